package provider

import (
	"fmt"

	"github.com/quantive/marketcore/internal/provider/finnhub"
	"github.com/quantive/marketcore/internal/provider/fmp"
	"github.com/quantive/marketcore/internal/provider/yahoo"
)

// New returns the adapter named by deps.Config.Provider. Selection
// happens once at startup; callers hold the interface afterwards.
func New(deps Deps) (MarketDataProvider, error) {
	switch deps.Config.Provider {
	case "fmp":
		return fmp.NewClient(fmp.Deps{
			Config: deps.Config,
			Logger: deps.Logger,
			HTTP:   deps.HTTP,
			Cache:  deps.Cache,
		}), nil
	case "finnhub":
		return finnhub.NewClient(finnhub.Deps{
			Config: deps.Config,
			Logger: deps.Logger,
			HTTP:   deps.HTTP,
			Cache:  deps.Cache,
		}), nil
	case "yahoo":
		return yahoo.NewClient(yahoo.Deps{
			Config: deps.Config,
			Logger: deps.Logger,
			HTTP:   deps.HTTP,
			Cache:  deps.Cache,
		}), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", deps.Config.Provider)
	}
}
