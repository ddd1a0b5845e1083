package governance

import (
	"context"
	"fmt"
	"testing"

	"specy-indexer/core/chain"
	"specy-indexer/core/reconcile"
	"specy-indexer/core/store"
	"specy-indexer/feature/governance/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func event(eventType string, attrs ...string) chain.Event {
	ev := chain.Event{Type: eventType}
	for i := 0; i+1 < len(attrs); i += 2 {
		ev.Attributes = append(ev.Attributes, chain.Attribute{Key: attrs[i], Value: attrs[i+1]})
	}
	return ev
}

func load(t *testing.T, repo store.Repository, kind store.Kind, key string) store.Entity {
	t.Helper()
	e, err := repo.Load(context.Background(), kind, key)
	require.NoError(t, err)
	return e
}

func setupRepository(t *testing.T) store.Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	reg := store.NewRegistry()
	models.Register(reg)
	repo := store.NewGormRepository(db, reg)
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func TestRule_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepository()
	r := NewReconcilers(repo, zap.NewNop())

	_, err := r.Rule.Handle(ctx, event("rule",
		"operation_type", "insert", "rule_name", "r1", "rule_content", "c1", "rule_hash", "h1"))
	require.NoError(t, err)
	assert.Equal(t, &models.Rule{ID: "r1", Name: "r1", Content: "c1", Hash: "h1"}, load(t, repo, store.KindRule, "r1"))

	_, err = r.Rule.Handle(ctx, event("rule",
		"operation_type", "update", "rule_name", "r1", "rule_content", "c2", "rule_hash", "h2"))
	require.NoError(t, err)
	assert.Equal(t, &models.Rule{ID: "r1", Name: "r1", Content: "c2", Hash: "h2"}, load(t, repo, store.KindRule, "r1"))

	_, err = r.Rule.Handle(ctx, event("rule", "operation_type", "delete", "rule_name", "r1"))
	require.NoError(t, err)
	assert.Nil(t, load(t, repo, store.KindRule, "r1"))
}

func TestBinding_RuleList(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepository()
	r := NewReconcilers(repo, zap.NewNop())

	_, err := r.Binding.Handle(ctx, event("binding",
		"operation_type", "insert", "binding_name", "b1", "binding_content", "bc",
		"binding_hash", "bh", "binding_rule_files_names", "r1,r2,r3"))
	require.NoError(t, err)
	b := load(t, repo, store.KindBinding, "b1").(*models.Binding)
	assert.Equal(t, []string{"r1", "r2", "r3"}, b.Rules)

	// Update replaces the list.
	_, err = r.Binding.Handle(ctx, event("binding",
		"operation_type", "update", "binding_name", "b1", "binding_content", "bc2",
		"binding_hash", "bh2", "binding_rule_files_names", "z"))
	require.NoError(t, err)
	b = load(t, repo, store.KindBinding, "b1").(*models.Binding)
	assert.Equal(t, &models.Binding{ID: "b1", Name: "b1", Content: "bc2", Hash: "bh2", Rules: []string{"z"}}, b)

	_, err = r.Binding.Handle(ctx, event("binding",
		"operation_type", "update", "binding_name", "b1", "binding_content", "bc3",
		"binding_hash", "bh3", "binding_rule_files_names", ""))
	require.NoError(t, err)
	b = load(t, repo, store.KindBinding, "b1").(*models.Binding)
	assert.Empty(t, b.Rules)
}

func TestBinding_KeepsDuplicatesAndOrder(t *testing.T) {
	a, err := DecodeBinding(event("binding",
		"binding_name", "b1", "binding_content", "", "binding_hash", "",
		"binding_rule_files_names", "r2,r1,r2"))
	require.NoError(t, err)
	assert.Equal(t, []string{"r2", "r1", "r2"}, a.Rules)
}

func TestRelation_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepository()
	r := NewReconcilers(repo, zap.NewNop())

	_, err := r.Relation.Handle(ctx, event("relation",
		"operation_type", "insert", "contract_address", "0xabc", "binding_name", "b1"))
	require.NoError(t, err)
	assert.Equal(t, &models.Relation{ID: "0xabc", ContractAddress: "0xabc", Binding: "b1"},
		load(t, repo, store.KindRelation, "0xabc"))

	_, err = r.Relation.Handle(ctx, event("relation",
		"operation_type", "update", "contract_address", "0xabc", "binding_name", "b2"))
	require.NoError(t, err)
	assert.Equal(t, "b2", load(t, repo, store.KindRelation, "0xabc").(*models.Relation).Binding)

	_, err = r.Relation.Handle(ctx, event("relation",
		"operation_type", "delete", "contract_address", "0xabc"))
	require.NoError(t, err)
	assert.Nil(t, load(t, repo, store.KindRelation, "0xabc"))
}

func TestProposal_InsertOnly(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepository()
	r := NewReconcilers(repo, zap.NewNop())

	// operation_type is ignored for proposals.
	action, err := r.Proposal.Handle(ctx, event("proposal", "proposal_id", "7", "proposal_result", "passed"))
	require.NoError(t, err)
	assert.Equal(t, reconcile.ActionUpsert, action.Type)

	action, err = r.Proposal.Handle(ctx, event("proposal",
		"operation_type", "delete", "proposal_id", "7", "proposal_result", "rejected"))
	require.NoError(t, err)
	assert.Equal(t, reconcile.ActionUpsert, action.Type)
	assert.Equal(t, &models.Proposal{ID: "7", Result: "rejected"}, load(t, repo, store.KindProposal, "7"))
}

func TestReconcilers_NoOps(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepository()
	r := NewReconcilers(repo, zap.NewNop())

	tests := []struct {
		name string
		rec  *reconcile.OperationReconciler
		ev   chain.Event
	}{
		{"update absent rule", r.Rule, event("rule", "operation_type", "update", "rule_name", "x", "rule_content", "c", "rule_hash", "h")},
		{"delete absent binding", r.Binding, event("binding", "operation_type", "delete", "binding_name", "x")},
		{"unknown relation op", r.Relation, event("relation", "operation_type", "upsert", "contract_address", "0x1")},
		{"missing op", r.Rule, event("rule", "rule_name", "x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, err := tt.rec.Handle(ctx, tt.ev)
			require.NoError(t, err)
			assert.Equal(t, reconcile.ActionNoOp, action.Type)
		})
	}

	for _, kind := range []store.Kind{store.KindRule, store.KindBinding, store.KindRelation} {
		assert.Zero(t, repo.Len(kind))
	}
}

func TestReconcilers_MissingAttributes(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepository()
	r := NewReconcilers(repo, zap.NewNop())

	tests := []struct {
		name string
		rec  *reconcile.OperationReconciler
		ev   chain.Event
		attr string
	}{
		{"rule without name", r.Rule, event("rule", "operation_type", "insert", "rule_content", "c", "rule_hash", "h"), chain.AttrRuleName},
		{"rule without hash", r.Rule, event("rule", "operation_type", "insert", "rule_name", "r", "rule_content", "c"), chain.AttrRuleHash},
		{"binding without rules", r.Binding, event("binding", "operation_type", "insert", "binding_name", "b", "binding_content", "c", "binding_hash", "h"), chain.AttrBindingRuleFilesNames},
		{"relation without binding", r.Relation, event("relation", "operation_type", "insert", "contract_address", "0x1"), chain.AttrBindingName},
		{"proposal with empty id", r.Proposal, event("proposal", "proposal_id", "", "proposal_result", "passed"), chain.AttrProposalID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.rec.Handle(ctx, tt.ev)
			require.Error(t, err)
			assert.ErrorIs(t, err, reconcile.ErrMissingAttribute)

			var attrErr *reconcile.AttributeError
			require.ErrorAs(t, err, &attrErr)
			assert.Equal(t, tt.attr, attrErr.Attribute)
		})
	}
}

func TestReconcilers_Database(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t)
	r := NewReconcilers(repo, zap.NewNop())

	_, err := r.Binding.Handle(ctx, event("binding",
		"operation_type", "insert", "binding_name", "b1", "binding_content", "bc",
		"binding_hash", "bh", "binding_rule_files_names", "r1,r2"))
	require.NoError(t, err)

	b := load(t, repo, store.KindBinding, "b1").(*models.Binding)
	assert.Equal(t, []string{"r1", "r2"}, b.Rules)

	_, err = r.Binding.Handle(ctx, event("binding",
		"operation_type", "update", "binding_name", "b1", "binding_content", "bc",
		"binding_hash", "bh", "binding_rule_files_names", "r3"))
	require.NoError(t, err)
	b = load(t, repo, store.KindBinding, "b1").(*models.Binding)
	assert.Equal(t, []string{"r3"}, b.Rules)

	_, err = r.Proposal.Handle(ctx, event("proposal", "proposal_id", "1", "proposal_result", "passed"))
	require.NoError(t, err)
	assert.Equal(t, &models.Proposal{ID: "1", Result: "passed"}, load(t, repo, store.KindProposal, "1"))
}

func TestMerge_DoesNotModifyExisting(t *testing.T) {
	existing := &models.Binding{ID: "b1", Name: "b1", Content: "c", Hash: "h", Rules: []string{"x", "y"}}
	merged, err := BindingAdapter{}.Merge(existing, event("binding",
		"binding_name", "b1", "binding_content", "c2", "binding_hash", "h2", "binding_rule_files_names", "z"))
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "y"}, existing.Rules)
	assert.Equal(t, "c", existing.Content)
	assert.Equal(t, []string{"z"}, merged.(*models.Binding).Rules)

	_, err = RuleAdapter{}.Merge(existing, event("rule", "rule_name", "b1", "rule_content", "", "rule_hash", ""))
	assert.Error(t, err)
}
