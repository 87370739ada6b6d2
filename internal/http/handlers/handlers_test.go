package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"subtrack/internal/domain"
	"subtrack/internal/infra"
	"subtrack/internal/middleware"
	"subtrack/internal/service"
)

// In-memory repositories backing handler tests. They implement the domain
// interfaces so the real services and router run unchanged.

type memUserRepo struct {
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*domain.User{}}
}

func (m *memUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return nil, domain.ErrDuplicate
		}
	}
	cp := *u
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	m.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUserRepo) List(_ context.Context, search string, limit, offset int) ([]domain.User, error) {
	var out []domain.User
	for _, u := range m.users {
		if search != "" && !strings.Contains(u.Name, search) && !strings.Contains(u.Email, search) {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	if offset < len(out) {
		out = out[offset:]
	} else {
		out = nil
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memUserRepo) ListRecent(_ context.Context, limit int) ([]domain.User, error) {
	return m.List(context.Background(), "", limit, 0)
}

func (m *memUserRepo) ListActiveIDsByRole(_ context.Context, role domain.UserRole) ([]string, error) {
	var ids []string
	for id, u := range m.users {
		if u.Role == role && u.Active {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *memUserRepo) UpdateProfile(_ context.Context, id, name, locale string) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u.Name = name
	if locale != "" {
		u.Locale = locale
	}
	u.UpdatedAt = time.Now()
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) SetActive(_ context.Context, id string, active bool) error {
	u, ok := m.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Active = active
	return nil
}

func (m *memUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

type memNotificationRepo struct {
	rows []domain.Notification
}

func (m *memNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	n.ID = uuid.NewString()
	n.CreatedAt = time.Now().Add(time.Duration(len(m.rows)) * time.Millisecond)
	m.rows = append(m.rows, *n)
	return nil
}

func (m *memNotificationRepo) ListByUser(_ context.Context, userID string, limit int) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range m.rows {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memNotificationRepo) CountUnread(_ context.Context, userID string) (int, error) {
	count := 0
	for _, n := range m.rows {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (m *memNotificationRepo) MarkRead(_ context.Context, userID, notificationID string) (bool, error) {
	for i := range m.rows {
		if m.rows[i].ID == notificationID && m.rows[i].UserID == userID {
			m.rows[i].Read = true
			return true, nil
		}
	}
	return false, nil
}

func (m *memNotificationRepo) MarkAllRead(_ context.Context, userID string) (int, error) {
	updated := 0
	for i := range m.rows {
		if m.rows[i].UserID == userID && !m.rows[i].Read {
			m.rows[i].Read = true
			updated++
		}
	}
	return updated, nil
}

type memSubscriptionRepo struct {
	rows []domain.Subscription
}

func (m *memSubscriptionRepo) ListByUser(_ context.Context, userID string) ([]domain.Subscription, error) {
	var out []domain.Subscription
	for _, s := range m.rows {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSubscriptionRepo) ListRecent(_ context.Context, limit int) ([]domain.Subscription, error) {
	out := append([]domain.Subscription(nil), m.rows...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memSubscriptionRepo) GetActiveForUser(_ context.Context, userID string) (*domain.Subscription, error) {
	for _, s := range m.rows {
		if s.UserID == userID && s.Status == domain.SubscriptionActive {
			cp := s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memSubscriptionRepo) CountsByStatus(_ context.Context) (map[domain.SubscriptionStatus]int, error) {
	out := map[domain.SubscriptionStatus]int{}
	for _, s := range m.rows {
		out[s.Status]++
	}
	return out, nil
}

func (m *memSubscriptionRepo) ActiveCharges(_ context.Context) ([]domain.PlanCharge, error) {
	var out []domain.PlanCharge
	for _, s := range m.rows {
		if s.Status == domain.SubscriptionActive {
			out = append(out, domain.PlanCharge{Price: s.PlanPrice, Cycle: domain.BillingCycleMonthly})
		}
	}
	return out, nil
}

func (m *memSubscriptionRepo) MonthlyCounts(_ context.Context, since time.Time) ([]domain.TrendBucket, error) {
	byMonth := map[int]*domain.TrendBucket{}
	for _, s := range m.rows {
		if s.CreatedAt.Before(since) {
			continue
		}
		key := s.CreatedAt.Year()*100 + int(s.CreatedAt.Month())
		b, ok := byMonth[key]
		if !ok {
			b = &domain.TrendBucket{Year: s.CreatedAt.Year(), Month: int(s.CreatedAt.Month())}
			byMonth[key] = b
		}
		b.Count++
		b.Revenue += s.PlanPrice
	}
	var out []domain.TrendBucket
	for _, b := range byMonth {
		out = append(out, *b)
	}
	return out, nil
}

func (m *memSubscriptionRepo) PlanCounts(_ context.Context) ([]domain.PlanRanking, error) {
	return m.rank(func(domain.Subscription) bool { return true }), nil
}

func (m *memSubscriptionRepo) PlanCountsByYear(_ context.Context) ([]domain.YearPlanCount, error) {
	years := map[int]bool{}
	for _, s := range m.rows {
		years[s.CreatedAt.Year()] = true
	}
	var out []domain.YearPlanCount
	for year := range years {
		for _, r := range m.rank(func(s domain.Subscription) bool { return s.CreatedAt.Year() == year }) {
			out = append(out, domain.YearPlanCount{Year: year, Ranking: r})
		}
	}
	return out, nil
}

func (m *memSubscriptionRepo) PlanCountsSince(_ context.Context, since time.Time) ([]domain.PlanRanking, error) {
	return m.rank(func(s domain.Subscription) bool { return !s.CreatedAt.Before(since) }), nil
}

func (m *memSubscriptionRepo) rank(keep func(domain.Subscription) bool) []domain.PlanRanking {
	byPlan := map[string]*domain.PlanRanking{}
	for _, s := range m.rows {
		if !keep(s) {
			continue
		}
		r, ok := byPlan[s.PlanID]
		if !ok {
			r = &domain.PlanRanking{PlanID: s.PlanID, PlanName: s.PlanName, PlanPrice: s.PlanPrice}
			byPlan[s.PlanID] = r
		}
		r.SubscriptionCount++
	}
	var out []domain.PlanRanking
	for _, r := range byPlan {
		out = append(out, *r)
	}
	return out
}

type memPlanRepo struct {
	rows []domain.Plan
}

func (m *memPlanRepo) Create(_ context.Context, p *domain.Plan) (*domain.Plan, error) {
	cp := *p
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Now()
	m.rows = append(m.rows, cp)
	out := cp
	return &out, nil
}

func (m *memPlanRepo) GetByID(_ context.Context, id string) (*domain.Plan, error) {
	for _, p := range m.rows {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memPlanRepo) List(_ context.Context) ([]domain.Plan, error) {
	return append([]domain.Plan(nil), m.rows...), nil
}

type memDiscountRepo struct {
	rows  []domain.Discount
	usage []domain.DiscountUsage
}

func (m *memDiscountRepo) GetByID(_ context.Context, id string) (*domain.Discount, error) {
	for _, d := range m.rows {
		if d.ID == id {
			cp := d
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memDiscountRepo) List(_ context.Context, activeOnly bool, limit int) ([]domain.Discount, error) {
	var out []domain.Discount
	for _, d := range m.rows {
		if activeOnly && !d.Active {
			continue
		}
		out = append(out, d)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memDiscountRepo) ListUsage(_ context.Context, limit int) ([]domain.DiscountUsage, error) {
	out := append([]domain.DiscountUsage(nil), m.usage...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memUsageRepo struct {
	rows []domain.UsageRecord
}

func (m *memUsageRepo) ListByUser(_ context.Context, userID string, limit int) ([]domain.UsageRecord, error) {
	var out []domain.UsageRecord
	for _, u := range m.rows {
		if u.UserID == userID {
			out = append(out, u)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memStatsRepo struct {
	overview domain.Overview
}

func (m *memStatsRepo) Overview(context.Context) (*domain.Overview, error) {
	o := m.overview
	return &o, nil
}

// testEnv wires the real services over in-memory repositories.
type testEnv struct {
	app           *App
	users         *memUserRepo
	notifications *memNotificationRepo
	subscriptions *memSubscriptionRepo
	plans         *memPlanRepo
	discounts     *memDiscountRepo
	usage         *memUsageRepo
	stats         *memStatsRepo
}

func newTestEnv() *testEnv {
	cfg := &infra.Config{
		AppEnv:          "test",
		Port:            "0",
		JWTSecret:       "test-secret",
		JWTTTL:          time.Hour,
		DefaultLocale:   "en",
		AllowedOrigins:  []string{"*"},
		RateLimitPerMin: 10000,
	}
	env := &testEnv{
		users:         newMemUserRepo(),
		notifications: &memNotificationRepo{},
		subscriptions: &memSubscriptionRepo{},
		plans:         &memPlanRepo{},
		discounts:     &memDiscountRepo{},
		usage:         &memUsageRepo{},
		stats:         &memStatsRepo{},
	}
	logger := zerolog.Nop()
	notificationSvc := service.NewNotifications(env.notifications, env.users, logger)
	analyticsSvc := service.NewAnalytics(env.subscriptions, env.stats, env.discounts, env.usage, env.users)
	env.app = NewApp(cfg, logger, notificationSvc, analyticsSvc, env.users, env.plans, env.subscriptions, env.discounts)
	return env
}

func (e *testEnv) addUser(role domain.UserRole, email string) *domain.User {
	u, err := e.users.Create(context.Background(), &domain.User{
		Email:        email,
		Name:         "Test " + email,
		PasswordHash: "x",
		Role:         role,
		Active:       true,
	})
	if err != nil {
		panic(err)
	}
	return u
}

// authedRequest builds a request carrying the user identity the way AuthJWT
// middleware would after verifying a token.
func authedRequest(method, target string, body *strings.Reader, u *domain.User) *http.Request {
	if body == nil {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	req = req.WithContext(middleware.ContextWithUser(req.Context(), u.ID, string(u.Role)))
	return req
}

func seedSubscription(env *testEnv, userID, planID, planName string, price float64, status domain.SubscriptionStatus, created time.Time) {
	env.subscriptions.rows = append(env.subscriptions.rows, domain.Subscription{
		ID:        fmt.Sprintf("sub-%d", len(env.subscriptions.rows)+1),
		UserID:    userID,
		PlanID:    planID,
		PlanName:  planName,
		PlanPrice: price,
		Status:    status,
		CreatedAt: created,
	})
}
