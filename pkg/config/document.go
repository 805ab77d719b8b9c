// Package config loads feed documents (namespaces, channel metadata and articles) from YAML or JSON.
package config

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lepinkainen/smartformat/pkg/feed"
)

// Document is the on-disk description of one feed. Mapping order is kept as written.
type Document struct {
	Namespaces feed.Namespaces
	Channel    feed.Channel
	Items      []feed.Article
}

// Writer builds a feed writer: default namespaces, then the document's own, channel and items
func (d *Document) Writer() *feed.Writer {
	w := feed.New(d.Channel)
	for _, ns := range d.Namespaces {
		w.AddNamespace(ns.Prefix, ns.URI)
	}
	return w.SetArticles(d.Items)
}

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Document) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	*d = Document{}
	if isNull(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: feed document must be a mapping", node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, node.Content[i+1]

		switch key {
		case "namespaces":
			pairs, err := scalarPairs(key, value)
			if err != nil {
				return err
			}
			for _, p := range pairs {
				if p.value == nil {
					return fmt.Errorf("namespaces.%s: URI must not be null", p.key)
				}
				d.Namespaces.Set(p.key, *p.value)
			}

		case "channel":
			pairs, err := scalarPairs(key, value)
			if err != nil {
				return err
			}
			for _, p := range pairs {
				v := ""
				if p.value != nil {
					v = *p.value
				}
				d.Channel.Set(p.key, v)
			}

		case "items":
			items, err := decodeItems(value)
			if err != nil {
				return err
			}
			d.Items = append(d.Items, items...)

		default:
			return fmt.Errorf("line %d: unknown key %q", node.Content[i].Line, key)
		}
	}

	return nil
}

func decodeItems(node *yaml.Node) ([]feed.Article, error) {
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: items must be a list", node.Line)
	}

	items := make([]feed.Article, 0, len(node.Content))
	for i, itemNode := range node.Content {
		pairs, err := scalarPairs(fmt.Sprintf("items[%d]", i), itemNode)
		if err != nil {
			return nil, err
		}
		article := make(feed.Article, 0, len(pairs))
		for _, p := range pairs {
			article.Set(p.key, p.value)
		}
		items = append(items, article)
	}
	return items, nil
}

type pair struct {
	key   string
	value *string
}

// scalarPairs reads a flat mapping of scalars, keeping key order. Null values come back as nil.
func scalarPairs(section string, node *yaml.Node) ([]pair, error) {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: line %d: expected a mapping", section, node.Line)
	}

	pairs := make([]pair, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if v.Kind == yaml.AliasNode && v.Alias != nil {
			v = v.Alias
		}

		key := strings.TrimSpace(k.Value)
		if k.Kind != yaml.ScalarNode || key == "" {
			return nil, fmt.Errorf("%s: line %d: keys must be non-empty tag names", section, k.Line)
		}
		if v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%s.%s: line %d: value must be a scalar", section, key, v.Line)
		}

		p := pair{key: key}
		if !isNull(v) {
			value := v.Value
			p.value = &value
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null"
}

// LoadDocument reads a feed document from a local path or an http(s) URL.
// For URLs, loader.LocalPath is used as a fallback copy and ctx bounds the fetch.
func LoadDocument(ctx context.Context, source string, loader *LoaderConfig) (*Document, error) {
	if loader == nil {
		loader = DefaultLoaderConfig()
	}

	var doc Document
	if IsRemote(source) {
		config := *loader
		config.RemoteURL = source
		config.FallbackToDefault = false
		if err := LoadFromURLWithFallback(ctx, &config, &doc); err != nil {
			return nil, err
		}
		return &doc, nil
	}

	if err := loadFromFile(source, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// IsRemote reports whether source is an http(s) URL
func IsRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
