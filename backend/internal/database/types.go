package database

import "time"

type TableExist bool

const (
	TableNotExist TableExist = false
	TableExists   TableExist = true
)

type MigrationId int

type Migration struct {
	Id MigrationId `db:"id"`
}

type Run struct {
	Id          string    `db:"id"`
	CreatedTime time.Time `db:"created_timestamp"`
	ImageSize   int       `db:"image_size"`
	HashSize    int       `db:"hash_size"`
	Threshold   int       `db:"threshold"`
}

type Image struct {
	Id        int64  `db:"id,omitempty"`
	RunId     string `db:"run_id"`
	Path      string `db:"path"`
	FileName  string `db:"file_name"`
	Directory string `db:"directory"`
	Hash      string `db:"hash"`
}

type ImageSimilar struct {
	RunId          string `db:"run_id"`
	ImageId        int64  `db:"image_id"`
	SimilarImageId int64  `db:"similar_image_id"`
	Rank           int    `db:"rank"`
	Distance       int    `db:"distance"`
}

type ImageError struct {
	RunId   string `db:"run_id"`
	Path    string `db:"path"`
	Kind    string `db:"kind"`
	Message string `db:"message"`
}
