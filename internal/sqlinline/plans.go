package sqlinline

const QInsertPlan = `--sql 99bbd301-dbaf-4fa2-b91c-d5f8978c5311
insert into plans (id, name, type, price, billing_cycle)
values (gen_random_uuid(), $1, $2, $3, $4)
returning id, name, type, price, billing_cycle, created_at;
`

const QSelectPlanByID = `--sql c0fe8b6d-7992-43e2-b358-ed2dec033519
select id, name, type, price, billing_cycle, created_at
from plans
where id = $1;
`

const QListPlans = `--sql 45225391-f240-48b5-87fe-7cf3a60cab1f
select id, name, type, price, billing_cycle, created_at
from plans
order by price asc, name asc;
`
