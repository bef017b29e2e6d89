package repository

const (
	getSongByIDQuery = `SELECT song_id, title, raw_s3_key, stream_url, duration_ms, play_count, status, uploaded_at, updated_at
					FROM songs WHERE song_id = $1`
	updateStatusQuery = `UPDATE songs SET status = $2, updated_at = now() WHERE song_id = $1`
	setStreamURLQuery = `UPDATE songs SET stream_url = $2, status = $3, updated_at = now() WHERE song_id = $1`
	addPlaysQuery     = `UPDATE songs SET play_count = play_count + $2, updated_at = now() WHERE song_id = $1`
)
