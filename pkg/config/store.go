package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Names of the configuration documents served by the store. Each is read
// from <dir>/<name>.json.
const (
	DocEnergyProfiles  = "energy_profiles"
	DocCWUSchedule     = "cwu_schedule"
	DocSystemConfig    = "system_config"
	DocUserCorrections = "user_corrections"
)

var documentNames = []string{DocEnergyProfiles, DocCWUSchedule, DocSystemConfig, DocUserCorrections}

// Store caches the four configuration documents in memory. A document that
// fails to load keeps its previous value; stale data is preferred over no
// data. All access is serialized behind one mutex so a reload is observed
// consistently.
type Store struct {
	dir string

	documents    map[string]*Document
	lastLoadTime *time.Time

	mutex sync.Mutex
}

func NewStore(dir string) *Store {
	return &Store{
		dir:       dir,
		documents: make(map[string]*Document, len(documentNames)),
	}
}

// ReloadAll re-reads every document from disk. Returns true only when all
// four loaded in this call. Load errors are logged and absorbed, never
// returned.
func (s *Store) ReloadAll() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.reloadAll()
}

func (s *Store) reloadAll() bool {
	success := true
	var loaded []string
	for _, name := range documentNames {
		doc, err := s.loadDocument(name)
		if err != nil {
			success = false
			logrus.Errorf("config: %v", err)
			continue
		}
		s.documents[name] = doc
		loaded = append(loaded, name)
	}
	if len(loaded) > 0 {
		now := time.Now()
		s.lastLoadTime = &now
		logrus.Infof("config: loaded %s", strings.Join(loaded, ", "))
	}
	return success
}

func (s *Store) loadDocument(name string) (*Document, error) {
	path := filepath.Join(s.dir, name+".json")
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	raw := map[string]any{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &Document{Raw: raw, LoadedAt: time.Now()}, nil
}

// document returns the cached document, loading everything first when this
// one was never loaded.
func (s *Store) document(name string) *Document {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.documents[name] == nil {
		s.reloadAll()
	}
	return s.documents[name]
}

func (s *Store) EnergyProfiles() *Document {
	return s.document(DocEnergyProfiles)
}

// EnergyProfile returns the profile object for one day-type key, nil when
// the key is absent or the document never loaded.
func (s *Store) EnergyProfile(dayType string) map[string]any {
	return s.document(DocEnergyProfiles).Section("energy_profiles", dayType)
}

func (s *Store) CWUSchedule() *Document {
	return s.document(DocCWUSchedule)
}

func (s *Store) SystemConfig() *Document {
	return s.document(DocSystemConfig)
}

func (s *Store) UserCorrections() *Document {
	return s.document(DocUserCorrections)
}

// Status reports the last successful load time and which documents are
// currently available. Pure read, never triggers a reload.
type Status struct {
	LastLoadTime *time.Time      `json:"last_load_time"`
	Loaded       map[string]bool `json:"files_loaded"`
}

func (s *Store) Status() Status {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	st := Status{
		LastLoadTime: s.lastLoadTime,
		Loaded:       make(map[string]bool, len(documentNames)),
	}
	for _, name := range documentNames {
		st.Loaded[name] = s.documents[name] != nil
	}
	return st
}
