package controller

import "sync"

// Sessions хранит отдельный контроллер для каждого чата.
type Sessions struct {
	factory  func() *Controller
	sessions map[int64]*Controller
	mu       sync.Mutex
}

// NewSessions создает реестр сессий; factory вызывается для нового чата.
func NewSessions(factory func() *Controller) *Sessions {
	return &Sessions{factory: factory, sessions: make(map[int64]*Controller)}
}

// Get возвращает контроллер чата, создавая его при первом обращении.
// created сообщает, что контроллер только что создан и его снимок еще пуст.
func (s *Sessions) Get(chatID int64) (c *Controller, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.sessions[chatID]; ok {
		return c, false
	}
	c = s.factory()
	s.sessions[chatID] = c
	return c, true
}

// End удаляет сессию чата; следующий Get создаст контроллер с начальным состоянием.
func (s *Sessions) End(chatID int64) {
	s.mu.Lock()
	delete(s.sessions, chatID)
	s.mu.Unlock()
}

// Len возвращает число активных сессий.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
