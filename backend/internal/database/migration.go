package database

type migration struct {
	id          MigrationId
	description string
	query       string
}

var migrations = []migration{
	{
		id:          0,
		description: "Initial Tables",
		query: `
			CREATE TABLE run (
			    id TEXT PRIMARY KEY,
			    created_timestamp DATETIME,
			    image_size INT,
			    hash_size INT,
			    threshold INT
			);

			CREATE TABLE image (
			    id INTEGER PRIMARY KEY,
			    run_id TEXT,
			    path TEXT,
			    file_name TEXT,
			    directory TEXT,
			    hash TEXT,

			    FOREIGN KEY(run_id) REFERENCES run(id) ON DELETE CASCADE,
			    UNIQUE (run_id, path)
			);

			CREATE TABLE image_similar (
			    run_id TEXT,
			    image_id INTEGER,
			    similar_image_id INTEGER,
			    rank INTEGER,
			    distance INTEGER,

			    FOREIGN KEY(run_id) REFERENCES run(id) ON DELETE CASCADE,
			    FOREIGN KEY(image_id) REFERENCES image(id) ON DELETE CASCADE,
			    FOREIGN KEY(similar_image_id) REFERENCES image(id) ON DELETE CASCADE

			    -- Required indices is created dynamically so that INSERT can be optimized
			);
		`,
	},
	{
		id:          1,
		description: "Image Errors",
		query: `
			CREATE TABLE image_error (
			    run_id TEXT,
			    path TEXT,
			    kind TEXT,
			    message TEXT,

			    FOREIGN KEY(run_id) REFERENCES run(id) ON DELETE CASCADE
			);

			CREATE INDEX image_error_run_idx ON image_error (run_id);
		`,
	},
}
