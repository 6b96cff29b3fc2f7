package memory

import (
	"sync"

	"github.com/polyarguminds/polyargu/internal/domain"
)

type AgentStore struct {
	mu     sync.RWMutex
	agents map[domain.SessionID][]*domain.Agent
}

func NewAgentStore() *AgentStore {
	return &AgentStore{
		agents: make(map[domain.SessionID][]*domain.Agent),
	}
}

func (s *AgentStore) CreateAgents(agents []*domain.Agent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range agents {
		s.agents[a.SessionID] = append(s.agents[a.SessionID], a)
	}
	return nil
}

func (s *AgentStore) GetAgentsBySession(sessionID domain.SessionID) ([]*domain.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	agents := s.agents[sessionID]
	out := make([]*domain.Agent, len(agents))
	copy(out, agents)
	return out, nil
}

func (s *AgentStore) GetAgentByRole(sessionID domain.SessionID, role domain.AgentRole) (*domain.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.agents[sessionID] {
		if a.Role == role {
			return a, nil
		}
	}
	return nil, domain.ErrAgentNotFound
}

func (s *AgentStore) DeleteAgentsBySession(sessionID domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.agents, sessionID)
	return nil
}
