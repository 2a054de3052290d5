package pipeline

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/freifahren/sichtungskern/internal/chat"
	"github.com/freifahren/sichtungskern/internal/testfixtures"
)

func TestWorkerPool_ProcessesAllUpdatesThenStopsOnCancel(t *testing.T) {
	topo, err := testfixtures.Berlin()
	require.NoError(t, err)

	tagger := spanned("Hermannplatz")
	fakeCatalog := &fakeCatalogClient{byName: map[string]string{"Hermannplatz": "catalog-hermannplatz"}}
	chain := NewChain(
		NewGuardStage(),
		NewExtractorStage(topo, tagger),
		NewVerifierStage(topo, tagger),
		NewResolverStage(topo, fakeCatalog),
	)

	pool := NewWorkerPool(chain, 4, zerolog.Nop())

	updates := make(chan chat.Update, 10)
	for i := 0; i < 10; i++ {
		updates <- chat.Update{ChannelID: "c1", AuthorID: int64(i), Text: "Kontrolle am Hermannplatz auf der U8"}
	}
	close(updates)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	pool.Run(ctx, updates)

	require.Equal(t, 10, fakeCatalog.submittedCount())
}

func TestWorkerPool_StopsPromptlyOnContextCancel(t *testing.T) {
	topo, err := testfixtures.Berlin()
	require.NoError(t, err)

	tagger := spanned()
	fakeCatalog := &fakeCatalogClient{}
	chain := NewChain(
		NewGuardStage(),
		NewExtractorStage(topo, tagger),
		NewVerifierStage(topo, tagger),
		NewResolverStage(topo, fakeCatalog),
	)

	pool := NewWorkerPool(chain, 2, zerolog.Nop())
	updates := make(chan chat.Update)

	ctx, cancel := context.WithCancel(context.Background())
	var done atomic.Bool
	go func() {
		pool.Run(ctx, updates)
		done.Store(true)
	}()

	cancel()
	require.Eventually(t, func() bool { return done.Load() }, 1*time.Second, 10*time.Millisecond)
}
