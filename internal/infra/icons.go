package infra

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

// IconCache downloads and caches coin icons from the image URLs the backend
// serves with each market row.
type IconCache struct {
	basePath string
	client   *http.Client
}

// NewIconCache creates a new IconCache rooted in the OS config directory.
func NewIconCache() (*IconCache, error) {
	path, err := getIconsPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve icons path: %w", err)
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create icons directory: %w", err)
	}

	// Tune transport to prevent connection leaks on bulk syncs
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = 100
	transport.MaxConnsPerHost = 10
	transport.IdleConnTimeout = 30 * time.Second

	return &IconCache{
		basePath: path,
		client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}, nil
}

// Fetch downloads the icon for a coin if not already cached and returns the
// local file path. Images are resized to 24x24 for consistent display.
func (c *IconCache) Fetch(coinID, imageURL string) (string, error) {
	safeID := sanitizeID(coinID)
	if safeID == "" {
		return "", fmt.Errorf("invalid coin id: %s", coinID)
	}

	filePath := filepath.Join(c.basePath, safeID+".png")
	if _, err := os.Stat(filePath); err == nil {
		return filePath, nil // Cache hit
	}

	if imageURL == "" {
		return "", fmt.Errorf("no image URL for coin %s", coinID)
	}

	resp, err := c.client.Get(imageURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status: %s", resp.Status)
	}

	srcImg, err := imaging.Decode(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	resizedImg := imaging.Resize(srcImg, 24, 24, imaging.Lanczos)
	if err := imaging.Save(resizedImg, filePath); err != nil {
		return "", fmt.Errorf("failed to save resized image: %w", err)
	}

	return filePath, nil
}

// Path returns the local path an icon would be cached at.
func (c *IconCache) Path(coinID string) string {
	return filepath.Join(c.basePath, sanitizeID(coinID)+".png")
}

func getIconsPath() (string, error) {
	var configDir string
	var err error

	if runtime.GOOS == "windows" {
		configDir = os.Getenv("LOCALAPPDATA")
		if configDir == "" {
			configDir, err = os.UserConfigDir()
		}
	} else {
		configDir, err = os.UserConfigDir()
	}

	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "TradeDesk", "assets", "icons"), nil
}

// sanitizeID strips anything that could traverse paths out of a coin id.
func sanitizeID(id string) string {
	res := make([]rune, 0, len(id))
	for _, r := range strings.ToLower(id) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			res = append(res, r)
		}
	}
	return string(res)
}
