package sqlinline

const QInsertUser = `--sql aa93ddd7-65b7-4bd3-b1a1-4506f28673c8
insert into users (id, email, name, password_hash, role, locale)
values (gen_random_uuid(), lower($1), $2, $3, $4, $5)
returning id, email, name, password_hash, role, locale, active, created_at, updated_at;
`

const QSelectUserByID = `--sql cc9180aa-0e6d-432b-9b80-27cc73945ddf
select id, email, name, password_hash, role, locale, active, created_at, updated_at
from users
where id = $1;
`

const QSelectUserByEmail = `--sql d4b4f4f9-2a83-4192-933d-1138abce2ac6
select id, email, name, password_hash, role, locale, active, created_at, updated_at
from users
where email = lower($1);
`

const QListUsers = `--sql 719e3cb3-fd80-4434-b3a4-2c016cdef6aa
select id, email, name, password_hash, role, locale, active, created_at, updated_at
from users
where ($1 = '' or email ilike '%' || $1 || '%' or name ilike '%' || $1 || '%')
order by created_at desc
limit $2 offset $3;
`

const QListRecentUsers = `--sql 69d522b2-d0c2-4b04-97ec-119f541fcd3f
select id, email, name, password_hash, role, locale, active, created_at, updated_at
from users
order by created_at desc
limit $1;
`

const QListActiveUserIDsByRole = `--sql 439482ec-71df-45fe-a424-536f2d42fe9e
select id
from users
where role = $1 and active = true;
`

const QUpdateUserProfile = `--sql 46ec38d6-3206-484e-9211-ad0ec4c18fc7
update users
set name = $2,
    locale = $3,
    updated_at = now()
where id = $1
returning id, email, name, password_hash, role, locale, active, created_at, updated_at;
`

const QSetUserActive = `--sql f89c9c0d-ec1e-45c7-ab75-64841209f3c3
update users
set active = $2,
    updated_at = now()
where id = $1;
`

const QDeleteUser = `--sql 769b2511-a530-47ab-99d8-6ef861afca30
delete from users
where id = $1;
`

const QSelectUserAccessByID = `--sql e2244175-6097-4570-8c40-20ded576e568
select id, email, role, active
from users
where id = $1;
`

const QSelectUserAccessByEmail = `--sql 9fa2aa84-fe70-47c7-a7d9-9db7502ec5a9
select id, email, role, active
from users
where email = $1;
`

const QUpdateUserRole = `--sql 5364f93c-8115-430f-9cce-8043d8e507f1
update users
set role = $2,
    updated_at = now()
where id = $1
returning id, email, role, active;
`
