package analytics

import (
	"context"
	"log/slog"

	"github.com/apache/spark-connect-go/v35/spark/sql"
	"github.com/vintagefinds/storefront/internal/core/domain"
)

// A CartDemandAnalyzer reads archived cart events through
// a Spark Connect session and streams demand signals back.
type CartDemandAnalyzer struct {
	addr string
}

func NewCartDemandAnalyzer(addr string) CartDemandAnalyzer {
	return CartDemandAnalyzer{addr}
}

func (a CartDemandAnalyzer) Do(
	ctx context.Context, srcPaths []string,
) <-chan domain.DemandSignal {
	c := make(chan domain.DemandSignal, 1)
	go a.do(ctx, c, srcPaths)
	return c
}

func (a CartDemandAnalyzer) do(
	ctx context.Context, stream chan<- domain.DemandSignal, srcPaths []string,
) {
	const op = "CartDemandAnalyzer.do"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return
	}
	defer close(stream)

	s, err := sql.NewSessionBuilder().Remote(a.addr).Build(ctx)
	if err != nil {
		log.Error("failed to build session", "err", err)
		return
	}

	defer a.stop(s)

	for _, src := range srcPaths {
		df, err := s.Read().Format("json").Load(src)
		if err != nil {
			log.Error("failed to read source", "src", src)
			return
		}

		nEvents, err := df.Count(ctx)
		if err != nil {
			log.Error("failed to count dataframe rows", "err", err)
			return
		}

		row, err := df.First(ctx)
		if err != nil {
			log.Error("failed to get first row", "err", err)
			return
		}

		sessionID, ok := row.Value("session_id").(string)
		if !ok {
			log.Error("failed to assert session_id type: not string")
			return
		}

		stream <- domain.DemandSignal{
			SessionID: sessionID,
			AddEvents: int(nEvents),
		}
	}
}

func (a CartDemandAnalyzer) stop(s sql.SparkSession) {
	const op = "CartDemandAnalyzer.stop"
	log := slog.With("op", op)
	if err := s.Stop(); err != nil {
		log.Error("failed to stop session", "err", err)
	}
}
