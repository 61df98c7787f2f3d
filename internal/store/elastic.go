package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"internship-assistant/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
)

const elasticPageSize = 1000

const matchAllSortedByID = `{"query":{"match_all":{}},"sort":[{"id":{"order":"asc"}}]}`

// ElasticStore reads records of one kind from its own index.
type ElasticStore[T any] struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticStore[T any](client *elasticsearch.Client, index string) *ElasticStore[T] {
	return &ElasticStore[T]{client: client, index: index}
}

type searchResponse[T any] struct {
	Hits struct {
		Hits []struct {
			Source T `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

type getResponse[T any] struct {
	Found  bool `json:"found"`
	Source T    `json:"_source"`
}

func (s *ElasticStore[T]) FindAll(ctx context.Context) ([]T, error) {
	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(strings.NewReader(matchAllSortedByID)),
		s.client.Search.WithSize(elasticPageSize),
	)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", s.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search %s: %s", s.index, res.Status())
	}

	var parsed searchResponse[T]
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode %s search: %w", s.index, err)
	}

	out := make([]T, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		out = append(out, hit.Source)
	}
	return out, nil
}

func (s *ElasticStore[T]) FindByID(ctx context.Context, id int64) (T, bool, error) {
	var zero T

	res, err := s.client.Get(s.index, strconv.FormatInt(id, 10), s.client.Get.WithContext(ctx))
	if err != nil {
		return zero, false, fmt.Errorf("get %s/%d: %w", s.index, id, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return zero, false, nil
	}
	if res.IsError() {
		return zero, false, fmt.Errorf("get %s/%d: %s", s.index, id, res.Status())
	}

	var parsed getResponse[T]
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return zero, false, fmt.Errorf("decode %s/%d: %w", s.index, id, err)
	}
	if !parsed.Found {
		return zero, false, nil
	}
	return parsed.Source, true, nil
}

// IndexName is the index holding records of kind.
func IndexName(prefix string, kind models.EntityKind) string {
	return prefix + string(kind)
}

// NewElasticStores builds index-backed stores, one index per kind.
func NewElasticStores(client *elasticsearch.Client, prefix string) Stores {
	return Stores{
		Offers:               NewElasticStore[models.Offer](client, IndexName(prefix, models.KindOffer)),
		Applications:         NewElasticStore[models.Application](client, IndexName(prefix, models.KindApplication)),
		Agreements:           NewElasticStore[models.Agreement](client, IndexName(prefix, models.KindAgreement)),
		Invitations:          NewElasticStore[models.InterviewInvitation](client, IndexName(prefix, models.KindInterviewInvitation)),
		StudentEvaluations:   NewElasticStore[models.StudentEvaluation](client, IndexName(prefix, models.KindStudentEvaluation)),
		WorkplaceEvaluations: NewElasticStore[models.WorkplaceEvaluation](client, IndexName(prefix, models.KindWorkplaceEvaluation)),
		Notifications:        NewElasticStore[models.Notification](client, IndexName(prefix, models.KindNotification)),
	}
}
