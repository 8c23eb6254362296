package convert

import (
	"context"
	"sync"
	"time"

	"github.com/hashgraph-online/conversational-agent-sub001/core/mirror"
)

// fakeMirror is an in-memory mirror.Client for detection and converter
// tests. Namespaces are string sets; per-namespace delays let tests exercise
// the settle-all probe semantics.
type fakeMirror struct {
	mu sync.Mutex

	accounts  map[string]bool
	tokens    map[string]bool
	topics    map[string]bool
	contracts map[string]bool

	topicMemos   map[string]string
	evmAddresses map[string]string

	accountDelay  time.Duration
	tokenDelay    time.Duration
	topicDelay    time.Duration
	contractDelay time.Duration

	calls int
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{
		accounts:     map[string]bool{},
		tokens:       map[string]bool{},
		topics:       map[string]bool{},
		contracts:    map[string]bool{},
		topicMemos:   map[string]string{},
		evmAddresses: map[string]string{},
	}
}

func (f *fakeMirror) record() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeMirror) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeMirror) AccountBalance(ctx context.Context, id string) (*mirror.AccountBalance, error) {
	f.record()
	time.Sleep(f.accountDelay)
	if !f.accounts[id] {
		return nil, mirror.ErrNotFound
	}
	return &mirror.AccountBalance{Account: id, Balance: 100}, nil
}

func (f *fakeMirror) AccountInfo(ctx context.Context, id string) (*mirror.AccountInfo, error) {
	f.record()
	if !f.accounts[id] {
		return nil, mirror.ErrNotFound
	}
	info := &mirror.AccountInfo{Account: id, EVMAddress: f.evmAddresses[id]}
	return info, nil
}

func (f *fakeMirror) TokenInfo(ctx context.Context, id string) (*mirror.TokenInfo, error) {
	f.record()
	time.Sleep(f.tokenDelay)
	if !f.tokens[id] {
		return nil, mirror.ErrNotFound
	}
	return &mirror.TokenInfo{TokenID: id, Symbol: "TST"}, nil
}

func (f *fakeMirror) TopicInfo(ctx context.Context, id string) (*mirror.TopicInfo, error) {
	f.record()
	time.Sleep(f.topicDelay)
	if !f.topics[id] {
		return nil, mirror.ErrNotFound
	}
	return &mirror.TopicInfo{TopicID: id, Memo: f.topicMemos[id]}, nil
}

func (f *fakeMirror) ContractInfo(ctx context.Context, id string) (*mirror.ContractInfo, error) {
	f.record()
	time.Sleep(f.contractDelay)
	if !f.contracts[id] {
		return nil, mirror.ErrNotFound
	}
	return &mirror.ContractInfo{ContractID: id, EVMAddress: f.evmAddresses[id]}, nil
}
