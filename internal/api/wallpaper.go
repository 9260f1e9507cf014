package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// The UI blurs a daily wallpaper behind the forecast. Bing's image-of-the-day
// needs no API key, so it is the default source.
const wallpaperTTL = 6 * time.Hour

var marketPattern = regexp.MustCompile(`^[a-z]{2}-[A-Z]{2}$`)

type wallpaperPayload struct {
	Provider  string `json:"provider"`
	Market    string `json:"mkt"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	Copyright string `json:"copyright"`
}

type bingImageResponse struct {
	Images []struct {
		URL       string `json:"url"`
		Title     string `json:"title"`
		Copyright string `json:"copyright"`
	} `json:"images"`
}

type wallpaperCacheEntry struct {
	FetchedAt time.Time
	Payload   wallpaperPayload
}

var (
	wallpaperCacheMu sync.Mutex
	wallpaperCache   = map[string]wallpaperCacheEntry{}
)

func (s *Server) wallpaperHandler(c *gin.Context) {
	market := sanitizeMarket(c.Query("mkt"))
	payload, err := getWallpaper(c.Request.Context(), market)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to fetch wallpaper",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, payload)
}

func sanitizeMarket(mkt string) string {
	if marketPattern.MatchString(mkt) {
		return mkt
	}
	return "en-US"
}

func getWallpaper(ctx context.Context, market string) (wallpaperPayload, error) {
	wallpaperCacheMu.Lock()
	entry, ok := wallpaperCache[market]
	wallpaperCacheMu.Unlock()

	if ok && time.Since(entry.FetchedAt) < wallpaperTTL {
		return entry.Payload, nil
	}

	endpoint := fmt.Sprintf("https://www.bing.com/HPImageArchive.aspx?format=js&idx=0&n=1&mkt=%s", market)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return wallpaperPayload{}, err
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return wallpaperPayload{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return wallpaperPayload{}, fmt.Errorf("wallpaper source returned %s", resp.Status)
	}

	var decoded bingImageResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return wallpaperPayload{}, err
	}
	if len(decoded.Images) == 0 {
		return wallpaperPayload{}, fmt.Errorf("wallpaper source returned no images")
	}

	img := decoded.Images[0]
	payload := wallpaperPayload{
		Provider:  "bing",
		Market:    market,
		URL:       "https://www.bing.com" + img.URL,
		Title:     img.Title,
		Copyright: img.Copyright,
	}

	wallpaperCacheMu.Lock()
	wallpaperCache[market] = wallpaperCacheEntry{FetchedAt: time.Now(), Payload: payload}
	wallpaperCacheMu.Unlock()

	return payload, nil
}
