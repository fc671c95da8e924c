// Package fixtures provides embedded sample users and services for the demo
// endpoints. Fixture data is an external collaborator of the recommendation
// core, never part of its contract.
package fixtures

import (
	_ "embed"
	"fmt"
	"sort"

	"smartgov_backend/internal/recommend/transport"

	"gopkg.in/yaml.v3"
)

//go:embed sample_data.yaml
var sampleData []byte

type fixtureService struct {
	ID                 int64   `yaml:"id"`
	Name               string  `yaml:"name"`
	DaysLeft           int     `yaml:"daysLeft"`
	Seasonality        string  `yaml:"seasonality"`
	CategoryImportance float64 `yaml:"categoryImportance"`
}

type fixtureUser struct {
	ID            int64            `yaml:"id"`
	Name          string           `yaml:"name"`
	ActivityLevel string           `yaml:"activityLevel"`
	Phone         string           `yaml:"phone"`
	Services      []fixtureService `yaml:"services"`
}

type fixtureFile struct {
	Users []fixtureUser `yaml:"users"`
}

// Store holds the parsed fixture data, keyed by user ID.
type Store struct {
	users    map[int64]transport.User
	services map[int64][]transport.ServiceInput
}

// Load parses the embedded sample data.
func Load() (*Store, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(sampleData, &file); err != nil {
		return nil, fmt.Errorf("parse sample data: %w", err)
	}

	store := &Store{
		users:    make(map[int64]transport.User, len(file.Users)),
		services: make(map[int64][]transport.ServiceInput, len(file.Users)),
	}

	for _, u := range file.Users {
		store.users[u.ID] = transport.User{
			ID:            u.ID,
			Name:          u.Name,
			ActivityLevel: u.ActivityLevel,
			Phone:         u.Phone,
		}

		services := make([]transport.ServiceInput, 0, len(u.Services))
		for _, s := range u.Services {
			services = append(services, transport.ServiceInput{
				ID:                 s.ID,
				Name:               s.Name,
				DaysLeft:           s.DaysLeft,
				Seasonality:        s.Seasonality,
				CategoryImportance: s.CategoryImportance,
			})
		}
		store.services[u.ID] = services
	}

	return store, nil
}

// Users returns all fixture users ordered by ID.
func (s *Store) Users() []transport.User {
	users := make([]transport.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

// User looks up one fixture user by ID.
func (s *Store) User(id int64) (transport.User, bool) {
	u, ok := s.users[id]
	return u, ok
}

// ServicesFor returns the fixture services of a user.
func (s *Store) ServicesFor(userID int64) []transport.ServiceInput {
	return s.services[userID]
}
