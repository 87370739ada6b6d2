package sqlinline

const QOverviewCounts = `--sql eca76606-456b-4f71-a53e-4ad2ebc52f4f
select
  (select count(*) from users)::int,
  (select count(*) from subscriptions where status = 'active')::int,
  (select count(*) from subscriptions)::int,
  (select count(*) from plans)::int;
`
