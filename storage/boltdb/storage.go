package boltdb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"git.sr.ht/~mariusor/contestcal/calendar"
	"git.sr.ht/~mariusor/contestcal/storage"
)

type LoggerFn func(string, ...interface{})

type repo struct {
	d    *bolt.DB
	root []byte
	path string
	log  LoggerFn
	err  LoggerFn
}

const (
	rootBucket  = "contests"
	DefaultFile = "contests.bdb"
)

type Config struct {
	Path  string
	LogFn LoggerFn
	ErrFn LoggerFn
}

// New returns a new contests repository
func New(c Config) *repo {
	b := repo{
		root: []byte(rootBucket),
		path: c.Path,
		log:  func(string, ...interface{}) {},
		err:  func(string, ...interface{}) {},
	}
	if c.ErrFn != nil {
		b.err = c.ErrFn
	}
	if c.LogFn != nil {
		b.log = c.LogFn
	}

	return &b
}

func (r *repo) open() error {
	var err error
	r.d, err = bolt.Open(r.path, 0600, nil)
	if err != nil {
		return fmt.Errorf("could not open db %s %w", r.path, err)
	}
	err = r.d.Update(func(tx *bolt.Tx) error {
		root, err := tx.CreateBucketIfNotExists(r.root)
		if err != nil {
			return fmt.Errorf("unable to create root bucket %s: %w", r.root, err)
		}
		if !root.Writable() {
			return fmt.Errorf("non writeable root bucket %s", r.root)
		}
		return nil
	})
	return err
}

// close closes the boltdb database if possible.
func (r *repo) close() error {
	if r.d == nil {
		return nil
	}
	return r.d.Close()
}

// LoadContest loads a single contest by platform, start time and name. Two
// divisions of the same round share a start time but never a name.
func (r *repo) LoadContest(platform string, date time.Time, name string) calendar.Contest {
	contests, err := r.LoadContests(storage.DateCursor{T: date, D: time.Hour}, platform)
	if err != nil {
		r.err("error loading contests: %s", err)
	}
	for _, c := range contests {
		if c.Name == name {
			return c
		}
	}
	return calendar.Contest{}
}

// LoadContests loads the contests stored for the cursor window, for the
// given platforms.
func (r *repo) LoadContests(cursor storage.DateCursor, platforms ...string) (calendar.Contests, error) {
	var err error
	err = r.open()
	if err != nil {
		return nil, err
	}
	defer r.close()
	return loadFromBucket(r.d, r.root, cursor, platforms...)
}

func loadFromBucketRecursive(b *bolt.Bucket, min, max []byte) calendar.Contests {
	contests := make(calendar.Contests, 0)

	c := b.Cursor()

	first := func() ([]byte, []byte) { return c.First() }
	compare := func(k, v []byte) bool { return k != nil }
	if min != nil {
		first = func() ([]byte, []byte) { return c.Seek(min) }
	}
	if max != nil {
		compare = func(k, v []byte) bool { return k != nil && bytes.Compare(k, max) <= 0 }
	}
	for key, raw := first(); compare(key, raw); key, raw = c.Next() {
		if raw == nil {
			// this is a bucket mate: descend!
			contests = append(contests, loadFromBucketRecursive(b.Bucket(key), nil, nil)...)
		} else {
			cc, _ := loadItem(raw)
			if cc.IsValid() {
				contests = append(contests, cc)
			}
		}
	}

	return contests
}

func loadFromBucket(db *bolt.DB, root []byte, cursor storage.DateCursor, platforms ...string) (calendar.Contests, error) {
	contests := make(calendar.Contests, 0)

	err := db.View(func(tx *bolt.Tx) error {
		rb := tx.Bucket(root)
		if rb == nil {
			return fmt.Errorf("invalid bucket %s", root)
		}

		var err error
		for _, platform := range platforms {
			var b *bolt.Bucket
			min, max := getCursorPaths(cursor, []byte(platform))
			b, min, max, err = descendToLastCommonBucket(rb, min, max)
			contests = append(contests, loadFromBucketRecursive(b, min, max)...)
		}
		return err
	})

	return contests, err
}

func loadItem(raw []byte) (calendar.Contest, error) {
	c := calendar.Contest{}
	if len(raw) == 0 {
		return c, fmt.Errorf("empty raw item")
	}
	err := json.Unmarshal(raw, &c)
	return c, err
}

var pathSeparator = []byte{'/'}

func getCursorPaths(c storage.DateCursor, platform []byte) ([]byte, []byte) {
	var min, max []byte
	if c.D < 0 {
		max = itemBucketPath(platform, c.T)
		min = itemBucketPath(platform, c.T.Add(c.D))
	} else {
		min = itemBucketPath(platform, c.T)
		max = itemBucketPath(platform, c.T.Add(c.D))
	}
	return min, max
}

func itemBucketPath(platform []byte, date time.Time) []byte {
	pathEl := make([][]byte, 0)

	pathEl = append(pathEl, platform)
	pathEl = append(pathEl, []byte(date.Format("06")))
	pathEl = append(pathEl, []byte(date.Format("01")))
	pathEl = append(pathEl, []byte(date.Format("02")))
	pathEl = append(pathEl, []byte(date.Format("15")))
	pathEl = append(pathEl, []byte(date.Format("04")))

	return bytes.Join(pathEl, pathSeparator)
}

func descendToLastCommonBucket(root *bolt.Bucket, min, max []byte) (*bolt.Bucket, []byte, []byte, error) {
	minPieces := bytes.Split(min, pathSeparator)
	maxPieces := bytes.Split(max, pathSeparator)

	b := root
	lvl := 0
	// the length should be the same
	for i, k := range minPieces {
		if !bytes.Equal(k, maxPieces[i]) {
			break
		}
		cb := b.Bucket(k)
		if cb == nil {
			break
		}
		lvl = i
		b = cb
	}
	min = bytes.Join(minPieces[lvl+1:], pathSeparator)
	max = bytes.Join(maxPieces[lvl+1:], pathSeparator)
	return b, min, max, nil
}

func descendInBucket(root *bolt.Bucket, path []byte, create bool) (*bolt.Bucket, []byte, error) {
	if root == nil {
		return nil, path, fmt.Errorf("trying to descend into nil bucket")
	}
	if len(path) == 0 {
		return root, path, nil
	}
	buckets := bytes.Split(path, pathSeparator)

	lvl := 0
	b := root
	// descend the bucket tree up to the last found bucket
	for _, name := range buckets {
		lvl++
		if len(name) == 0 {
			continue
		}
		if b == nil {
			return root, path, fmt.Errorf("trying to load from nil bucket")
		}
		var cb *bolt.Bucket
		if create {
			cb, _ = b.CreateBucketIfNotExists(name)
		} else {
			cb = b.Bucket(name)
		}
		if cb == nil {
			lvl--
			break
		}
		b = cb
	}
	path = bytes.Join(buckets[lvl:], pathSeparator)

	return b, path, nil
}

// SaveContests stores every contest of the batch, logging the ones that fail.
func (r *repo) SaveContests(contests calendar.Contests) error {
	var err error
	err = r.open()
	if err != nil {
		return err
	}
	defer r.close()

	for _, c := range contests {
		c, err = save(r, c)
		if err != nil {
			r.err("Error saving contest %s: %s", c.Name, err)
		}
	}
	return err
}

// SaveContest stores a single contest.
func (r *repo) SaveContest(c calendar.Contest) error {
	var err error
	err = r.open()
	if err != nil {
		return err
	}
	defer r.close()

	c, err = save(r, c)
	return err
}

func save(r *repo, c calendar.Contest) (calendar.Contest, error) {
	path := itemBucketPath([]byte(c.Platform), c.StartTime)

	err := r.d.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(r.root)
		if root == nil {
			return fmt.Errorf("invalid bucket %s", r.root)
		}
		if !root.Writable() {
			return fmt.Errorf("non writeable bucket %s", r.root)
		}
		b, path, err := descendInBucket(root, path, true)
		if err != nil {
			return fmt.Errorf("unable to find %s in root bucket: %w", path, err)
		}
		if !b.Writable() {
			return fmt.Errorf("non writeable bucket %s", path)
		}
		entryBytes, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("could not marshal object: %w", err)
		}
		objectID := []byte(c.Name)
		err = b.Put(objectID, entryBytes)
		if err != nil {
			return fmt.Errorf("could not store encoded object: %w", err)
		}

		return nil
	})

	return c, err
}
