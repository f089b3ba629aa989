package service

import (
	"context"
	"errors"

	"signal_bot/internal/models"
)

// ErrDataUnavailable провайдер не отдал пригодных свечей
var ErrDataUnavailable = errors.New("market data unavailable")

// Source отдаёт последние limit свечей по возрастанию времени.
type Source interface {
	Name() string
	Fetch(ctx context.Context, symbol string, interval models.Interval, limit int) ([]models.Candle, error)
}

// идентификаторы монет у агрегаторов
var paprikaIDs = map[string]string{
	"LDOUSDT": "ldo-lido-dao", "EIGENUSDT": "eigen-eigenlayer", "THETAUSDT": "theta-theta",
	"DOGEUSDT": "doge-dogecoin", "SOLUSDT": "sol-solana", "LTCUSDT": "ltc-litecoin",
	"BTCUSDT": "btc-bitcoin", "ETHUSDT": "eth-ethereum", "XRPUSDT": "xrp-xrp",
	"WLDUSDT": "wld-worldcoin", "BNBUSDT": "bnb-binance-coin", "SUIUSDT": "sui-sui",
	"SEIUSDT": "sei-sei", "SANDUSDT": "sand-the-sandbox", "ARBUSDT": "arb-arbitrum",
	"OPUSDT": "op-optimism", "XLMUSDT": "xlm-stellar", "ADAUSDT": "ada-cardano",
	"UNIUSDT": "uni-uniswap", "DOTUSDT": "dot-polkadot", "ATOMUSDT": "atom-cosmos",
}

var geckoIDs = map[string]string{
	"LDOUSDT": "lido-dao", "EIGENUSDT": "eigenlayer", "THETAUSDT": "theta-token",
	"DOGEUSDT": "dogecoin", "SOLUSDT": "solana", "LTCUSDT": "litecoin",
	"BTCUSDT": "bitcoin", "ETHUSDT": "ethereum", "XRPUSDT": "ripple",
	"WLDUSDT": "worldcoin-wld", "BNBUSDT": "binancecoin", "SUIUSDT": "sui",
	"SEIUSDT": "sei-network", "SANDUSDT": "the-sandbox", "ARBUSDT": "arbitrum",
	"OPUSDT": "optimism", "XLMUSDT": "stellar", "ADAUSDT": "cardano",
	"UNIUSDT": "uniswap", "DOTUSDT": "polkadot", "ATOMUSDT": "cosmos",
}

