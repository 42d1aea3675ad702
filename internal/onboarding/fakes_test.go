package onboarding

import (
	"context"
	"fmt"
	"sync"
)

type fakeAuth struct {
	mu          sync.Mutex
	authErr     error
	createErr   error
	authCalls   int
	createCalls int
	nextID      int
	block       chan struct{}
	entered     chan struct{}
}

func (a *fakeAuth) Authenticate(_ context.Context, email, _ string) (Account, error) {
	a.mu.Lock()
	a.authCalls++
	err := a.authErr
	a.mu.Unlock()
	a.wait()
	if err != nil {
		return "", err
	}
	return Account("acct-" + email), nil
}

func (a *fakeAuth) CreateAccount(_ context.Context, _, _ string) (Account, error) {
	a.mu.Lock()
	a.createCalls++
	a.nextID++
	id := a.nextID
	err := a.createErr
	a.mu.Unlock()
	a.wait()
	if err != nil {
		return "", err
	}
	return Account(fmt.Sprintf("acct-%d", id)), nil
}

func (a *fakeAuth) wait() {
	if a.entered != nil {
		a.entered <- struct{}{}
	}
	if a.block != nil {
		<-a.block
	}
}

func (a *fakeAuth) calls() (auth, create int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.authCalls, a.createCalls
}

type fakeProfiles struct {
	mu      sync.Mutex
	err     error
	records []ProfileRecord
}

func (p *fakeProfiles) WriteProfile(_ context.Context, record ProfileRecord) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.records = append(p.records, record)
	return nil
}

type recordingRouter struct {
	mu      sync.Mutex
	screens []Screen
}

func (r *recordingRouter) NavigateTo(screen Screen) {
	r.mu.Lock()
	r.screens = append(r.screens, screen)
	r.mu.Unlock()
}

func (r *recordingRouter) visited() []Screen {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Screen(nil), r.screens...)
}
