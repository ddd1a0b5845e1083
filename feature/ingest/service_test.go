package ingest

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"specy-indexer/core/chain"
	"specy-indexer/core/indexer"
	"specy-indexer/core/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// overlapRepository records how many repository calls run at the same time.
// Each call holds its slot briefly so that unserialised deliveries collide.
type overlapRepository struct {
	*store.MemoryRepository
	active atomic.Int32
	peak   atomic.Int32
}

func (r *overlapRepository) enter() func() {
	n := r.active.Add(1)
	for {
		p := r.peak.Load()
		if n <= p || r.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(time.Millisecond)
	return func() { r.active.Add(-1) }
}

func (r *overlapRepository) Load(ctx context.Context, kind store.Kind, key string) (store.Entity, error) {
	defer r.enter()()
	return r.MemoryRepository.Load(ctx, kind, key)
}

func (r *overlapRepository) Save(ctx context.Context, entity store.Entity) error {
	defer r.enter()()
	return r.MemoryRepository.Save(ctx, entity)
}

func (r *overlapRepository) Remove(ctx context.Context, kind store.Kind, key string) error {
	defer r.enter()()
	return r.MemoryRepository.Remove(ctx, kind, key)
}

func bindingBlock(height uint64, attrs ...string) chain.Block {
	ev := chain.Event{Type: "binding"}
	for i := 0; i+1 < len(attrs); i += 2 {
		ev.Attributes = append(ev.Attributes, chain.Attribute{Key: attrs[i], Value: attrs[i+1]})
	}
	return chain.Block{
		Header: chain.BlockHeader{Hash: fmt.Sprintf("0xC%d", height), Height: height, Time: time.Unix(1700000000, 0)},
		Transactions: []chain.Transaction{
			{Hash: fmt.Sprintf("0xT%d", height), Events: []chain.Event{ev}},
		},
	}
}

func TestService_DeliverSerialisesBlocks(t *testing.T) {
	ctx := context.Background()
	repo := &overlapRepository{MemoryRepository: store.NewMemoryRepository()}
	ix, err := indexer.New(repo, zap.NewNop(), indexer.DefaultConfig(), nil)
	require.NoError(t, err)
	svc := NewService(ix, repo, indexer.NewRegistry(), nil, false, zap.NewNop())

	_, err = svc.Deliver(ctx, bindingBlock(1,
		"operation_type", "insert", "binding_name", "A", "binding_content", "c",
		"binding_hash", "h", "binding_rule_files_names", "x,y"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		height := uint64(i + 2)
		b := bindingBlock(height,
			"operation_type", "update", "binding_name", "A", "binding_content", "c",
			"binding_hash", "h", "binding_rule_files_names", "z")
		if i%2 == 1 {
			b = bindingBlock(height, "operation_type", "delete", "binding_name", "A")
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Deliver(ctx, b)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), repo.peak.Load(), "deliveries overlapped")
	// Whatever the order, some delete runs last among the writes to A, and
	// updates of an absent binding are no-ops.
	binding, err := repo.MemoryRepository.Load(ctx, store.KindBinding, "A")
	require.NoError(t, err)
	assert.Nil(t, binding)
	assert.Equal(t, 9, repo.MemoryRepository.Len(store.KindBlock))
}

func TestService_DeliverDryRunIsSerialised(t *testing.T) {
	ctx := context.Background()
	repo := &overlapRepository{MemoryRepository: store.NewMemoryRepository()}
	ix, err := indexer.New(repo, zap.NewNop(), indexer.DefaultConfig(), nil)
	require.NoError(t, err)
	svc := NewService(ix, repo, indexer.NewRegistry(), nil, true, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		b := bindingBlock(uint64(i+1), "operation_type", "delete", "binding_name", "A")
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Deliver(ctx, b)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), repo.peak.Load())
	assert.Zero(t, repo.MemoryRepository.Len(store.KindBlock))
}
