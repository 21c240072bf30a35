package postgres

// SQL queries for the event history and device profiles.

const (
	// querySaveEvent inserts an event with device idempotency.
	// ON CONFLICT DO NOTHING returns no rows (sql.ErrNoRows) for duplicates.
	querySaveEvent = `
		INSERT INTO events (
			id, device_id, type, occurred_at, ingested_at, attributes
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (device_id, id) DO NOTHING
		RETURNING ingest_seq
	`

	// queryDeleteEvent withdraws an event that was archived but never
	// accepted for evaluation.
	queryDeleteEvent = `DELETE FROM events WHERE device_id = $1 AND id = $2`

	// queryCountEvents counts one condition over a half-open window.
	// attributes @> '{}' holds for every row, so an empty filter counts all.
	queryCountEvents = `
		SELECT COUNT(*)
		FROM events
		WHERE device_id = $1
		  AND type = $2
		  AND attributes @> $3::jsonb
		  AND occurred_at >= $4
		  AND occurred_at < $5
	`

	// queryListEvents feeds sequence matching. Ties on occurred_at keep
	// ingestion order.
	queryListEvents = `
		SELECT
			id, device_id, type, occurred_at, ingested_at, attributes
		FROM events
		WHERE device_id = $1
		  AND type = ANY($2)
		  AND occurred_at >= $3
		  AND occurred_at < $4
		ORDER BY occurred_at ASC, ingest_seq ASC
	`

	queryGetProfile = `SELECT tags FROM device_profiles WHERE device_id = $1`

	queryUpsertProfile = `
		INSERT INTO device_profiles (device_id, tags, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (device_id)
		DO UPDATE SET
			tags       = EXCLUDED.tags,
			updated_at = EXCLUDED.updated_at
	`
)
