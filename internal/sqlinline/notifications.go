package sqlinline

const QInsertNotification = `--sql 4b286406-15f8-41ff-bf65-7323f78e5c6c
insert into notifications (id, user_id, message, type, data)
values (gen_random_uuid(), $1, $2, $3, $4)
returning id, created_at;
`

const QListNotificationsByUser = `--sql d2527287-53c2-44b2-904b-f4dcb42e583e
select id, user_id, message, type, data, read, created_at
from notifications
where user_id = $1
order by created_at desc
limit $2;
`

const QCountUnreadNotifications = `--sql 3958322b-2dff-4394-a6b7-9baef7913ff9
select count(*)::int
from notifications
where user_id = $1 and read = false;
`

const QMarkNotificationRead = `--sql cfaeeb2a-5313-4df0-b1a4-d0e434c3f09e
update notifications
set read = true
where id = $2 and user_id = $1;
`

const QMarkAllNotificationsRead = `--sql c456b7d9-8e83-42c5-acf9-76c02cf14262
update notifications
set read = true
where user_id = $1 and read = false;
`
