package database

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS redemption_codes (
		id BIGSERIAL PRIMARY KEY,
		game_name TEXT NOT NULL,
		code TEXT NOT NULL,
		reward_description TEXT NOT NULL DEFAULT '',
		source_platform TEXT NOT NULL DEFAULT '',
		source_url TEXT,
		code_type TEXT NOT NULL DEFAULT 'permanent' CHECK (code_type IN ('permanent', 'limited')),
		expire_date TIMESTAMPTZ,
		status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'invalid')),
		review_status TEXT NOT NULL DEFAULT 'pending' CHECK (review_status IN ('pending', 'approved', 'rejected')),
		review_note TEXT,
		is_published BOOLEAN NOT NULL DEFAULT FALSE,
		publish_date TIMESTAMPTZ,
		verification_count INTEGER NOT NULL DEFAULT 0 CHECK (verification_count >= 0),
		failure_count INTEGER NOT NULL DEFAULT 0 CHECK (failure_count >= 0),
		credibility_score INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		UNIQUE (game_name, code)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_redemption_codes_review_status ON redemption_codes(review_status)`,
	`CREATE TABLE IF NOT EXISTS update_logs (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		operation_type TEXT NOT NULL CHECK (operation_type IN ('publish', 'unpublish', 'delete', 'edit', 'batch')),
		affected_count INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS scheduled_tasks (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		cron_expression TEXT NOT NULL,
		task_type TEXT NOT NULL CHECK (task_type IN ('crawl_all', 'crawl_game')),
		game_name TEXT,
		is_enabled BOOLEAN NOT NULL DEFAULT TRUE,
		last_run_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS crawl_logs (
		id BIGSERIAL PRIMARY KEY,
		task_id BIGINT,
		task_name TEXT NOT NULL,
		game_name TEXT,
		fetched INTEGER NOT NULL DEFAULT 0,
		created INTEGER NOT NULL DEFAULT 0,
		duplicates INTEGER NOT NULL DEFAULT 0,
		invalid INTEGER NOT NULL DEFAULT 0,
		error TEXT,
		created_at TIMESTAMPTZ NOT NULL
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS redemption_codes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_name TEXT NOT NULL,
		code TEXT NOT NULL,
		reward_description TEXT NOT NULL DEFAULT '',
		source_platform TEXT NOT NULL DEFAULT '',
		source_url TEXT,
		code_type TEXT NOT NULL DEFAULT 'permanent' CHECK (code_type IN ('permanent', 'limited')),
		expire_date TIMESTAMP,
		status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'invalid')),
		review_status TEXT NOT NULL DEFAULT 'pending' CHECK (review_status IN ('pending', 'approved', 'rejected')),
		review_note TEXT,
		is_published BOOLEAN NOT NULL DEFAULT 0,
		publish_date TIMESTAMP,
		verification_count INTEGER NOT NULL DEFAULT 0 CHECK (verification_count >= 0),
		failure_count INTEGER NOT NULL DEFAULT 0 CHECK (failure_count >= 0),
		credibility_score INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		UNIQUE (game_name, code)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_redemption_codes_review_status ON redemption_codes(review_status)`,
	`CREATE TABLE IF NOT EXISTS update_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		operation_type TEXT NOT NULL CHECK (operation_type IN ('publish', 'unpublish', 'delete', 'edit', 'batch')),
		affected_count INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS scheduled_tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		cron_expression TEXT NOT NULL,
		task_type TEXT NOT NULL CHECK (task_type IN ('crawl_all', 'crawl_game')),
		game_name TEXT,
		is_enabled BOOLEAN NOT NULL DEFAULT 1,
		last_run_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS crawl_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		task_id INTEGER,
		task_name TEXT NOT NULL,
		game_name TEXT,
		fetched INTEGER NOT NULL DEFAULT 0,
		created INTEGER NOT NULL DEFAULT 0,
		duplicates INTEGER NOT NULL DEFAULT 0,
		invalid INTEGER NOT NULL DEFAULT 0,
		error TEXT,
		created_at TIMESTAMP NOT NULL
	)`,
}
