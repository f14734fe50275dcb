package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"relicquest/game/engine"
	"relicquest/game/service"
)

var (
	ErrPackNotFound = errors.New("content pack not found")
	ErrInvalidPack  = errors.New("invalid content pack")
)

// Manager handles content pack loading and caching
type Manager struct {
	packDir     string
	defaultPack *engine.ContentPack
	packs       map[string]*engine.ContentPack
	mu          sync.RWMutex
}

// NewManager creates a new pack manager
func NewManager(packDir string) (*Manager, error) {
	if _, err := os.Stat(packDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("pack directory does not exist: %s", packDir)
	}

	m := &Manager{
		packDir: packDir,
		packs:   make(map[string]*engine.ContentPack),
	}

	m.loadDefaultPack()
	return m, nil
}

// LoadPack loads a content pack by name
func (m *Manager) LoadPack(name string) (*engine.ContentPack, error) {
	m.mu.RLock()
	if pack, exists := m.packs[name]; exists {
		m.mu.RUnlock()
		return pack, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if pack, exists := m.packs[name]; exists {
		return pack, nil
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	packPath := filepath.Join(m.packDir, filename)

	data, err := os.ReadFile(packPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPackNotFound
		}
		return nil, fmt.Errorf("failed to read pack file: %w", err)
	}

	var pack engine.ContentPack
	if err := json.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("failed to parse pack: %w", err)
	}

	if err := engine.ValidateContentPack(&pack); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}

	m.packs[name] = &pack
	return &pack, nil
}

// ListPacks returns information about all available content packs
func (m *Manager) ListPacks() ([]*service.PackInfo, error) {
	entries, err := os.ReadDir(m.packDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read pack directory: %w", err)
	}

	var packs []*service.PackInfo

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")

		pack, err := m.LoadPack(name)
		if err != nil {
			// Skip invalid packs
			continue
		}

		packs = append(packs, &service.PackInfo{
			Filename:    entry.Name(),
			PackID:      name,
			Name:        pack.Name,
			Description: pack.Description,
			PuzzleCount: len(pack.Catalog),
		})
	}

	return packs, nil
}

// GetDefault returns the default content pack
func (m *Manager) GetDefault() *engine.ContentPack {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultPack
}

// SetDefault sets the default content pack by name
func (m *Manager) SetDefault(name string) error {
	pack, err := m.LoadPack(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultPack = pack
	return nil
}

// RefreshCache clears cached packs and re-resolves the default
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	m.packs = make(map[string]*engine.ContentPack)
	m.mu.Unlock()

	m.loadDefaultPack()
}

// loadDefaultPack resolves the default pack: classic.json, then the first
// valid pack on disk, then the built-in one.
func (m *Manager) loadDefaultPack() {
	pack, err := m.LoadPack("classic")
	if err == nil {
		m.mu.Lock()
		m.defaultPack = pack
		m.mu.Unlock()
		return
	}

	packs, listErr := m.ListPacks()
	if listErr == nil && len(packs) > 0 {
		if pack, err := m.LoadPack(packs[0].PackID); err == nil {
			m.mu.Lock()
			m.defaultPack = pack
			m.mu.Unlock()
			return
		}
	}

	m.mu.Lock()
	m.defaultPack = engine.DefaultContentPack()
	m.mu.Unlock()
}
