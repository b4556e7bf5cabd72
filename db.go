package megabkg

import (
	"database/sql"
	"fmt"

	"github.com/klauspost/compress/zstd"
	_ "github.com/mattn/go-sqlite3"
)

// AssetDB caches converted assets keyed by the SHA-1 of the source image and
// a key naming the kind of asset and the options that produced it, so
// unchanged images aren't converted again. Blobs are stored zstd compressed.
type AssetDB struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewAssetDB opens or creates the cache database in file.
func NewAssetDB(file string) (*AssetDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS asset (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, kind TEXT NOT NULL, data BLOB NOT NULL, UNIQUE(sha1, kind))"); err != nil {
		db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, err
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, err
	}

	return &AssetDB{
		db:  db,
		enc: enc,
		dec: dec,
	}, nil
}

// Close releases the database.
func (db *AssetDB) Close() error {
	db.dec.Close()
	if err := db.enc.Close(); err != nil {
		db.db.Close()
		return err
	}
	return db.db.Close()
}

// Find returns the asset cached under key for the source image with hash
// sha, or nil if there isn't one.
func (db *AssetDB) Find(sha, key string) ([]byte, error) {
	var blob []byte
	switch err := db.db.QueryRow("SELECT data FROM asset WHERE sha1 = ? AND kind = ?", sha, key).Scan(&blob); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return db.dec.DecodeAll(blob, nil)
	default:
		return nil, err
	}
}

// Store caches data under key for the source image with hash sha. An
// existing entry is kept.
func (db *AssetDB) Store(sha, key string, data []byte) error {
	_, err := db.db.Exec("INSERT OR IGNORE INTO asset (sha1, kind, data) VALUES (?, ?, ?)", sha, key, db.enc.EncodeAll(data, nil))
	return err
}

// Length returns the number of cached assets.
func (db *AssetDB) Length() (int, error) {
	var n int
	if err := db.db.QueryRow("SELECT COUNT(*) FROM asset").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
