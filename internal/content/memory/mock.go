package memory

import (
	"time"

	"github.com/guyfedwards/newsdesk/internal/content"
)

// Mock returns the demo data set, with publication times relative to now.
func Mock(now time.Time) *Source {
	ago := func(min int) time.Time {
		return now.Add(-time.Duration(min) * time.Minute)
	}
	articles := []content.Article{
		{ID: "1", Title: "Oracle TikTok deal lifts AI mining stocks as bitcoin tags $88,000", Slug: "oracle-tiktok-deal", PublishedAt: ago(2), Category: "crypto", Source: "CoinDesk", SourceURL: "https://zh.panewslab.com/detail/", Tags: []string{"BTC"}, Likes: 5, Saves: 2},
		{ID: "2", Title: "只采借向Coinbase Prime存入2201枚BTC和7557枚ETH", Slug: "coinbase-prime-deposit", PublishedAt: ago(2), Category: "crypto", Source: "Odaily", SourceURL: "https://zh.rss.odaily.news/post/", Tags: []string{"BTC", "ETH"}, Likes: 8, Saves: 3},
		{ID: "3", Title: "主流Perp DEX—多数平台交易量不足30亿美元，Lighter交易量持续下滑", Slug: "perp-dex-volume", PublishedAt: ago(2), Category: "crypto", Source: "TheBlockBeats", SourceURL: "https://zh.api.theblockbeats.news/news/", Tags: []string{"HYPE", "ASTER"}, Likes: 3, Saves: 1},
		{ID: "4", Title: "数据显示交易增持 ETH，10 亿美元将持续链上买入，买在限币变在市", Slug: "eth-accumulation", PublishedAt: ago(5), Category: "crypto", Source: "ChainCatcher", SourceURL: "https://zh.chaincatcher.com/article/", Tags: []string{"ETH"}, Likes: 210, Saves: 5},
		{ID: "5", Title: "Bitget 已上线本位 MAGMA 永续合约，杠杆区间 1-20 倍", Slug: "bitget-magma", PublishedAt: ago(5), Category: "crypto", Source: "ChainCatcher", SourceURL: "https://zh.chaincatcher.com/article/", Tags: []string{"MAGMA"}, Likes: 120},
		{ID: "6", Title: "数据：某新建钱包从币安提取 1000 枚 BTC，约合 8730 万美元", Slug: "btc-withdraw-binance", PublishedAt: ago(7), Category: "crypto", Source: "ChainCatcher", SourceURL: "https://zh.chaincatcher.com/article/", Tags: []string{"BTC"}, Likes: 60, Saves: 1},
		{ID: "7", Title: "Gate will be the first platform to launch spot trading of oooo (OOOO).", Slug: "gate-oooo", PublishedAt: ago(7), Category: "crypto", Source: "Panews", SourceURL: "https://zh.panewslab.com/detail/", Likes: 15, Saves: 6},
		{ID: "8", Title: "Trend Research withdrew another 5,011 ETH from Binance, bringing its holdings to over 610,000 ETH.", Slug: "trend-research-eth", PublishedAt: ago(8), Category: "crypto", Source: "Panews", SourceURL: "https://zh.panewslab.com/detail/", Tags: []string{"ETH"}, Likes: 9, Saves: 1},
	}
	settings := &content.SiteSettings{
		Title: "newsdesk",
	}
	return New(articles, WithSettings(settings))
}
