// Package search keeps the user search index in Elasticsearch. Indexing
// is best-effort: the database row is the source of truth and the index
// is rebuilt opportunistically on writes.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
)

const usersIndex = "users"

type UserDoc struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	AvatarURL  string `json:"avatar_url"`
	IsVerified bool   `json:"is_verified"`
}

// Index wraps the users index. A nil *Index is valid and means search
// runs against the database instead.
type Index struct {
	es *elasticsearch.Client
}

func NewIndex(client *elasticsearch.Client) *Index {
	if client == nil {
		return nil
	}
	return &Index{es: client}
}

func (i *Index) Enabled() bool { return i != nil }

func (i *Index) IndexUser(ctx context.Context, doc UserDoc) error {
	if i == nil {
		return nil
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("index user: %w", err)
	}

	res, err := i.es.Index(
		usersIndex,
		bytes.NewReader(body),
		i.es.Index.WithDocumentID(strconv.FormatUint(uint64(doc.ID), 10)),
		i.es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index user: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index user: %s", res.Status())
	}
	return nil
}

func (i *Index) DeleteUser(ctx context.Context, id uint) error {
	if i == nil {
		return nil
	}

	res, err := i.es.Delete(
		usersIndex,
		strconv.FormatUint(uint64(id), 10),
		i.es.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete user doc: %w", err)
	}
	defer res.Body.Close()

	// 404 just means the user was never indexed.
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete user doc: %s", res.Status())
	}
	return nil
}

func (i *Index) Search(ctx context.Context, query string, size int) ([]UserDoc, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"username^2", "full_name"},
				"fuzziness": "AUTO",
			},
		},
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}

	res, err := i.es.Search(
		i.es.Search.WithContext(ctx),
		i.es.Search.WithIndex(usersIndex),
		i.es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search users: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source UserDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	docs := make([]UserDoc, len(r.Hits.Hits))
	for n, hit := range r.Hits.Hits {
		docs[n] = hit.Source
	}
	return docs, nil
}
