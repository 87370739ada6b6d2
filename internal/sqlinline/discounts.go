package sqlinline

const QSelectDiscountByID = `--sql 7d645a9d-3cb2-4221-9aa3-b8e617f87ea7
select id, code, name, type, value, active, expires_at, created_at
from discounts
where id = $1;
`

const QListDiscounts = `--sql 5151a67c-148b-425e-bd27-406437016aa8
select id, code, name, type, value, active, expires_at, created_at
from discounts
where (not $1 or active = true)
order by expires_at asc
limit $2;
`

const QListDiscountUsage = `--sql c39ca122-2b9f-4253-90ce-1f71e941b002
select id, user_id, code, amount_before, discount_amount, amount_after, applied_at
from discount_usages
order by applied_at desc
limit $1;
`
