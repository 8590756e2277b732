package shelf

import (
	"context"
	"fmt"

	"github.com/koios/moonlight-shelf/internal/applist"
	"github.com/koios/moonlight-shelf/internal/artwork"
	"github.com/koios/moonlight-shelf/internal/deeplink"
	"github.com/koios/moonlight-shelf/internal/settings"
	"github.com/koios/moonlight-shelf/pkg/models"
	"go.uber.org/zap"
)

// SectionTitlePrefix is prepended to the host name to title each section
const SectionTitlePrefix = "Moonlight: "

// Provider builds top shelf content from the shared app list
type Provider struct {
	settings settings.Reader
	artwork  *artwork.Resolver
	logger   *zap.Logger
	key      string
}

// NewProvider creates a new shelf content provider
func NewProvider(reader settings.Reader, resolver *artwork.Resolver, logger *zap.Logger) *Provider {
	return &Provider{
		settings: reader,
		artwork:  resolver,
		logger:   logger,
		key:      settings.AppListKey,
	}
}

// Load builds the shelf. A missing app list yields empty content and a nil
// error. An app list that cannot be decoded yields nil content and an error
// wrapping applist.ErrMalformed.
func (p *Provider) Load(ctx context.Context) (*models.Content, error) {
	res, err := p.DecodeAppList(ctx)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return &models.Content{Sections: []*models.Section{}}, nil
	}
	return p.Build(res.Entries), nil
}

// LoadTopShelfContent runs Load and hands the result to completion exactly
// once, with nil content when the app list is malformed
func (p *Provider) LoadTopShelfContent(ctx context.Context, completion func(*models.Content)) {
	content, err := p.Load(ctx)
	if err != nil {
		p.logger.Error("appList deserialization failed", zap.Error(err))
		content = nil
	}
	completion(content)
}

// Result is the outcome of an asynchronous load
type Result struct {
	Content *models.Content
	Err     error
}

// LoadAsync runs Load in a goroutine. The returned channel receives exactly
// one Result and is then closed.
func (p *Provider) LoadAsync(ctx context.Context) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		content, err := p.Load(ctx)
		ch <- Result{Content: content, Err: err}
	}()
	return ch
}

// DecodeAppList reads and decodes the stored app list. It returns a nil
// result and nil error when no app list is stored or it cannot be read.
func (p *Provider) DecodeAppList(ctx context.Context) (*applist.Result, error) {
	raw, ok, err := p.settings.String(ctx, p.key)
	if err != nil {
		p.logger.Warn("Failed to read app list, treating as absent",
			zap.String("key", p.key),
			zap.Error(err))
		return nil, nil
	}
	if !ok {
		p.logger.Debug("No app list stored", zap.String("key", p.key))
		return nil, nil
	}

	res, err := applist.Decode([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", p.key, err)
	}
	if res.NotArray {
		p.logger.Warn("App list is not an array, showing no apps", zap.String("key", p.key))
	}

	for _, rej := range res.Rejections {
		p.logger.Debug("Skipping app list entry",
			zap.Int("index", rej.Index),
			zap.Strings("missing", rej.Missing),
			zap.String("reason", rej.Reason))
	}

	return res, nil
}

// Build groups entries into one section per host name, in the order hosts
// first appear, keeping the input order of apps within each host
func (p *Provider) Build(entries []models.AppListEntry) *models.Content {
	content := &models.Content{Sections: []*models.Section{}}
	byHost := make(map[string]*models.Section)

	for _, entry := range entries {
		item := p.newItem(entry)

		section, exists := byHost[entry.HostName]
		if !exists {
			section = &models.Section{
				Title: SectionTitlePrefix + entry.HostName,
				Items: []*models.Item{},
			}
			byHost[entry.HostName] = section
			content.Sections = append(content.Sections, section)
		}
		section.Items = append(section.Items, item)
	}

	p.logger.Debug("Built shelf content",
		zap.Int("sections", len(content.Sections)),
		zap.Int("items", content.ItemCount()))

	return content
}

func (p *Provider) newItem(entry models.AppListEntry) *models.Item {
	item := models.NewItem(entry.ID)
	item.Title = entry.Name
	item.SetImageURL(p.artwork.Resolve(entry.HostUUID, entry.ID), models.AllScales...)

	link, err := deeplink.Build(entry.ID, entry.HostUUID)
	if err != nil {
		p.logger.Warn("Leaving item without action",
			zap.String("app_id", entry.ID),
			zap.String("host_uuid", entry.HostUUID),
			zap.Error(err))
		return item
	}

	action := &models.Action{URL: link}
	item.PlayAction = action
	item.DisplayAction = action
	return item
}
