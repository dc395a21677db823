package database

const postgresSchema = `
CREATE TABLE IF NOT EXISTS users (
	seq        BIGSERIAL PRIMARY KEY,
	user_id    UUID NOT NULL,
	user_name  VARCHAR(50) NOT NULL UNIQUE,
	email      TEXT NOT NULL,
	first_name VARCHAR(50) NOT NULL,
	last_name  VARCHAR(50) NOT NULL,
	birth_date DATE
);

CREATE TABLE IF NOT EXISTS tweets (
	seq        BIGSERIAL PRIMARY KEY,
	tweet_id   UUID NOT NULL UNIQUE,
	content    VARCHAR(280) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ,
	author     JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS credentials (
	user_name     VARCHAR(50) PRIMARY KEY,
	password_hash TEXT NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id    TEXT NOT NULL,
	user_name  TEXT NOT NULL UNIQUE,
	email      TEXT NOT NULL,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL,
	birth_date TEXT
);

CREATE TABLE IF NOT EXISTS tweets (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	tweet_id   TEXT NOT NULL UNIQUE,
	content    TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT,
	author     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS credentials (
	user_name     TEXT PRIMARY KEY,
	password_hash TEXT NOT NULL,
	updated_at    TEXT NOT NULL
);`
