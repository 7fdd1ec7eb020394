package config

import "CryptoTracker/internal/model"

// DefaultCoins is the watch list used when the config file names none.
var DefaultCoins = []model.Coin{
	{ID: "bitcoin", Symbol: "BTC", Name: "Bitcoin", ExchangeTicker: "btc"},
	{ID: "ethereum", Symbol: "ETH", Name: "Ethereum", ExchangeTicker: "eth"},
	{ID: "binancecoin", Symbol: "BNB", Name: "BNB", ExchangeTicker: "bnb"},
	{ID: "cardano", Symbol: "ADA", Name: "Cardano", ExchangeTicker: "ada"},
	{ID: "solana", Symbol: "SOL", Name: "Solana", ExchangeTicker: "sol"},
	{ID: "xrp", Symbol: "XRP", Name: "XRP", ExchangeTicker: "xrp"},
	{ID: "dogecoin", Symbol: "DOGE", Name: "Dogecoin", ExchangeTicker: "doge"},
	{ID: "monero", Symbol: "XMR", Name: "Monero", ExchangeTicker: "xmr"},
	{ID: "tether", Symbol: "USDT", Name: "Tether", ExchangeTicker: "usdt"},
	{ID: "polygon", Symbol: "MATIC", Name: "Polygon", ExchangeTicker: "matic"},
	{ID: "litecoin", Symbol: "LTC", Name: "Litecoin", ExchangeTicker: "ltc"},
	{ID: "chainlink", Symbol: "LINK", Name: "Chainlink", ExchangeTicker: "link"},
	{ID: "avalanche-2", Symbol: "AVAX", Name: "Avalanche", ExchangeTicker: "avax"},
	{ID: "tron", Symbol: "TRX", Name: "TRON", ExchangeTicker: "trx"},
	{ID: "shiba-inu", Symbol: "SHIB", Name: "Shiba Inu", ExchangeTicker: "shib"},
	{ID: "uniswap", Symbol: "UNI", Name: "Uniswap", ExchangeTicker: "uni"},
	{ID: "the-open-network", Symbol: "TON", Name: "Toncoin", ExchangeTicker: "ton"},
}
