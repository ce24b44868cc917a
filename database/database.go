package database

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/google/btree"
	"github.com/google/uuid"
	"github.com/natefinch/atomic"

	"github.com/fulldump/weakpool/utils"
	"github.com/fulldump/weakpool/weakpool"
)

const (
	StatusOpening   = "opening"
	StatusOperating = "operating"
	StatusClosing   = "closing"
)

var (
	ErrPoolAlreadyExists = errors.New("pool already exists")
	ErrPoolNotFound      = errors.New("pool not found")
	ErrObjectNotFound    = errors.New("object not found")
	ErrInvalidGroup      = errors.New("group is required")
)

type Config struct {
	DefaultPool string
	Capacity    int
	StatsFile   string // written on Stop when not empty
}

type Database struct {
	config *Config
	status string
	pools  map[string]*Pool
	mutex  *sync.RWMutex

	// pins keeps objects strongly reachable until released
	pins      *btree.BTreeG[*Object]
	pinsMutex *sync.Mutex

	exit     chan struct{}
	exitOnce *sync.Once
}

func NewDatabase(config *Config) *Database {
	return &Database{
		config:    config,
		status:    StatusOpening,
		pools:     map[string]*Pool{},
		mutex:     &sync.RWMutex{},
		pins:      btree.NewG(32, func(a, b *Object) bool { return a.Less(b) }),
		pinsMutex: &sync.Mutex{},
		exit:      make(chan struct{}),
		exitOnce:  &sync.Once{},
	}
}

func (db *Database) GetStatus() string {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	return db.status
}

func (db *Database) setStatus(status string) {
	db.mutex.Lock()
	db.status = status
	db.mutex.Unlock()
}

func (db *Database) CreatePool(name string, capacity int) (*Pool, error) {
	if capacity <= 0 {
		capacity = db.config.Capacity
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, exists := db.pools[name]; exists {
		return nil, ErrPoolAlreadyExists
	}

	p := newPool(name, capacity)
	db.pools[name] = p

	return p, nil
}

func (db *Database) GetPool(name string) (*Pool, error) {
	db.mutex.RLock()
	p, exists := db.pools[name]
	db.mutex.RUnlock()
	if !exists {
		return nil, ErrPoolNotFound
	}
	return p, nil
}

// ListPools returns pools sorted by name.
func (db *Database) ListPools() []*Pool {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	result := make([]*Pool, 0, len(db.pools))
	for _, name := range utils.GetKeys(db.pools) {
		result = append(result, db.pools[name])
	}
	return result
}

// DropPool forgets the pool and releases every object pinned into it.
func (db *Database) DropPool(name string) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, exists := db.pools[name]; !exists {
		return ErrPoolNotFound
	}
	delete(db.pools, name)

	db.pinsMutex.Lock()
	defer db.pinsMutex.Unlock()

	dropped := []*Object{}
	db.pins.Ascend(func(o *Object) bool {
		if o.Pool == name {
			dropped = append(dropped, o)
		}
		return true
	})
	for _, o := range dropped {
		db.pins.Delete(o)
	}

	return nil
}

// Pin creates a new object, keeps it reachable and adds it to the pool under
// group. A nil decoration is stored as absent.
func (db *Database) Pin(poolName, group string, payload, decoration map[string]any) (*Object, error) {
	if group == "" {
		return nil, ErrInvalidGroup
	}

	// Held until the object is in the pool so DropPool cannot leave it pinned.
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	p, exists := db.pools[poolName]
	if !exists {
		return nil, ErrPoolNotFound
	}

	o := &Object{
		ID:        uuid.NewString(),
		Pool:      poolName,
		Group:     group,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}

	db.pinsMutex.Lock()
	db.pins.ReplaceOrInsert(o)
	db.pinsMutex.Unlock()

	var err error
	if decoration == nil {
		err = p.Entries.Add(group, o)
	} else {
		err = p.Entries.AddDecorated(group, o, decoration)
	}
	if err != nil {
		db.Release(o.ID)
		return nil, fmt.Errorf("add to pool '%s': %w", poolName, err)
	}

	return o, nil
}

// Release drops the pin. The object stays in its pool until it is collected.
func (db *Database) Release(id string) (*Object, error) {
	db.pinsMutex.Lock()
	defer db.pinsMutex.Unlock()

	o, found := db.pins.Delete(&Object{ID: id})
	if !found {
		return nil, ErrObjectNotFound
	}
	return o, nil
}

func (db *Database) Pinned(id string) (*Object, bool) {
	db.pinsMutex.Lock()
	defer db.pinsMutex.Unlock()

	return db.pins.Get(&Object{ID: id})
}

func (db *Database) PinCount() int {
	db.pinsMutex.Lock()
	defer db.pinsMutex.Unlock()

	return db.pins.Len()
}

// Collect runs a garbage collection. Cleanups are delivered asynchronously,
// so pools may still report released objects right after it returns.
func (db *Database) Collect() {
	runtime.GC()
}

func (db *Database) Load() error {

	log.Println("Loading database...")

	if name := db.config.DefaultPool; name != "" {
		_, err := db.CreatePool(name, db.config.Capacity)
		if err != nil && err != ErrPoolAlreadyExists {
			db.setStatus(StatusClosing)
			return fmt.Errorf("create default pool '%s': %w", name, err)
		}
		log.Println("Default pool", name)
	}

	db.setStatus(StatusOperating)

	return nil
}

func (db *Database) Start() error {

	err := db.Load()
	if err != nil {
		return err
	}

	<-db.exit

	return nil
}

func (db *Database) Stop() error {

	defer db.exitOnce.Do(func() {
		close(db.exit)
	})

	db.setStatus(StatusClosing)

	if db.config.StatsFile == "" {
		return nil
	}

	log.Println("Writing stats to", db.config.StatsFile)
	err := db.WriteSnapshot(db.config.StatsFile)
	if err != nil {
		log.Println("ERROR: write stats:", err.Error())
		return err
	}

	return nil
}

type Snapshot struct {
	Timestamp time.Time                 `json:"timestamp"`
	Pins      int                       `json:"pins"`
	Pools     map[string]weakpool.Stats `json:"pools"`
}

func (db *Database) Snapshot() *Snapshot {
	s := &Snapshot{
		Timestamp: time.Now().UTC(),
		Pins:      db.PinCount(),
		Pools:     map[string]weakpool.Stats{},
	}
	for _, p := range db.ListPools() {
		s.Pools[p.Name] = p.Entries.Stats()
	}
	return s
}

// WriteSnapshot replaces filename atomically with the current stats.
func (db *Database) WriteSnapshot(filename string) error {
	payload, err := json.Marshal(db.Snapshot(), json.Deterministic(true))
	if err != nil {
		return fmt.Errorf("json encode snapshot: %w", err)
	}

	err = atomic.WriteFile(filename, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	return nil
}
