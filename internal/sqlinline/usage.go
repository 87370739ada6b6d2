package sqlinline

const QListUsageByUser = `--sql b9cf74d1-6748-4db5-8be0-8d8d78dc02a9
select id, user_id, day, data_used, avg_speed, peak_speed, created_at
from usage_records
where user_id = $1
order by day desc
limit $2;
`
