package store

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    ran_at TIMESTAMP NOT NULL,
    command TEXT NOT NULL,
    total_packages INTEGER NOT NULL,
    default_packages INTEGER NOT NULL,
    manual_packages INTEGER NOT NULL,
    auto_dependencies INTEGER NOT NULL,
    lock_path TEXT,
    lock_checksum TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_ran_at ON runs(ran_at);
CREATE INDEX IF NOT EXISTS idx_runs_command ON runs(command);
`
