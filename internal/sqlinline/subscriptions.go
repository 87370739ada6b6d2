package sqlinline

const QListSubscriptionsByUser = `--sql 78f65ff6-25bd-4b70-a0f0-376e80ff5522
select s.id, s.user_id, s.plan_id, s.status, s.start_date, s.end_date, s.created_at,
       p.name, p.price
from subscriptions s
join plans p on p.id = s.plan_id
where s.user_id = $1
order by s.created_at desc;
`

const QListRecentSubscriptions = `--sql 9adea198-04c1-4eaf-9cdd-ca752c49de8a
select s.id, s.user_id, s.plan_id, s.status, s.start_date, s.end_date, s.created_at,
       p.name, p.price
from subscriptions s
join plans p on p.id = s.plan_id
order by s.created_at desc
limit $1;
`

const QSelectActiveSubscriptionForUser = `--sql c3755d33-748e-4970-9511-dfe9bd4e41e9
select s.id, s.user_id, s.plan_id, s.status, s.start_date, s.end_date, s.created_at,
       p.name, p.price
from subscriptions s
join plans p on p.id = s.plan_id
where s.user_id = $1 and s.status = 'active'
order by s.created_at desc
limit 1;
`

const QSubscriptionStatusCounts = `--sql df5d4d31-785d-4c2c-8b2f-7f2549d3452c
select status, count(*)
from subscriptions
group by status;
`

const QActiveSubscriptionCharges = `--sql 801d10ae-5cf8-41f8-a04b-97a93cf6884e
select p.price, p.billing_cycle
from subscriptions s
join plans p on p.id = s.plan_id
where s.status = 'active';
`

const QMonthlySubscriptionCounts = `--sql 3efd2c53-db2f-419c-9e8e-87f44e217635
select extract(year from s.created_at)::int,
       extract(month from s.created_at)::int,
       count(*)::int,
       coalesce(sum(p.price), 0)::float8
from subscriptions s
join plans p on p.id = s.plan_id
where s.created_at >= $1
group by 1, 2;
`

const QPlanSubscriptionCounts = `--sql 7923457e-4462-4c0b-8d90-adbba606b08c
select p.id, p.name, p.type, p.price, count(s.id)::int
from subscriptions s
join plans p on p.id = s.plan_id
group by p.id, p.name, p.type, p.price;
`

const QPlanSubscriptionCountsByYear = `--sql c526779f-5de3-4ba9-b353-b39f62866487
select extract(year from s.created_at)::int,
       p.id, p.name, p.type, p.price,
       count(s.id)::int,
       count(distinct s.user_id)::int
from subscriptions s
join plans p on p.id = s.plan_id
group by 1, p.id, p.name, p.type, p.price;
`

const QPlanSubscriptionCountsSince = `--sql ec92d217-a884-41fb-87f5-8e5d4565721d
select p.id, p.name, p.type, p.price, count(s.id)::int
from subscriptions s
join plans p on p.id = s.plan_id
where s.created_at >= $1
group by p.id, p.name, p.type, p.price;
`
