package screenshot

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"dnstwister/pkg/domain"
)

const uploadURL = "https://transfer.sh/"

// TakeScreenshot takes a screenshot of the page served by name, uploads it and returns
// the URL. An empty string is returned when the domain serves nothing.
func TakeScreenshot(ctx context.Context, name string) string {
	ascii, err := domain.ToASCII(name)
	if err != nil {
		return ""
	}
	url := FinalURL(ctx, http.DefaultClient, ascii)
	if url == "" {
		return ""
	}

	quality := 90

	opts := []chromedp.ExecAllocatorOption{}
	opts = append(opts, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Headless,
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.WindowSize(1920, 1080),
		chromedp.IgnoreCertErrors,
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	tabCtx, cancelTabCtx := context.WithTimeout(browserCtx, 15*time.Second)
	defer cancelTabCtx()

	var buf []byte
	err = chromedp.Run(
		tabCtx,
		chromedp.Tasks{
			chromedp.Navigate(url),
			chromedp.Sleep(3 * time.Second),
			chromedp.FullScreenshot(&buf, quality),
		},
	)
	if err != nil {
		log.Warnf("Can't take a screenshot of domain '%v': %v", name, err)
		return ""
	}
	log.Infof("Screenshot taken for domain '%v'", name)

	link, err := upload(ctx, ascii, buf)
	if err != nil {
		log.Warnf("Can't upload the screenshot of domain '%v': %v", name, err)
		return ""
	}
	return link
}

func upload(ctx context.Context, ascii string, png []byte) (string, error) {
	file, err := os.CreateTemp("", ascii+"-*.png")
	if err != nil {
		return "", errors.Wrap(err, "can't create screenshot file")
	}
	defer os.Remove(file.Name())
	defer file.Close()
	if _, err := file.Write(png); err != nil {
		return "", errors.Wrap(err, "can't write screenshot file")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", errors.Wrap(err, "can't rewind screenshot file")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL+ascii+".png", file)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "image/png")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return "", errors.Errorf("upload refused: %s", res.Status)
	}
	message, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	return string(message), nil
}

// FinalURL checks if the website is online, over HTTPS first, and follows redirects
func FinalURL(ctx context.Context, client *http.Client, ascii string) string {
	for _, scheme := range []string{"https://", "http://"} {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, scheme+ascii, nil)
		if err != nil {
			return ""
		}
		res, err := client.Do(req)
		if err != nil {
			continue
		}
		res.Body.Close()
		if res.StatusCode != http.StatusOK {
			continue
		}
		return res.Request.URL.String()
	}
	return ""
}
