// Package search queries the network subgraph's metadata index and projects
// the hits into compact result records.
package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/qraqula/graphmcp/internal/graphql"
)

// DefaultLimit is how many hits are requested from the metadata index.
const DefaultLimit = 20

const maxDescriptionLen = 150

// Query is the full-text metadata search sent to the network subgraph.
const Query = `
query SearchSubgraphs($text: String!, $first: Int!) {
  subgraphMetadataSearch(text: $text, first: $first) {
    displayName
    description
    subgraph {
      id
      currentSignalledTokens
      currentVersion {
        metadata {
          description
        }
        subgraphDeployment {
          ipfsHash
          manifest {
            network
          }
        }
      }
    }
  }
}
`

// Hit is one raw search hit, flattened from the metadata search response.
type Hit struct {
	ID                     string
	DisplayName            string
	Network                string
	CurrentSignalledTokens string
	Description            string
	DeploymentID           string
	// HasCurrentVersion is false for subgraphs that were never published.
	HasCurrentVersion bool
}

// Result is the projected record returned to callers.
type Result struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	Network      string `json:"network"`
	Signal       string `json:"signal"`
	Description  string `json:"description,omitempty"`
	DeploymentID string `json:"deploymentId,omitempty"`
}

// Project drops inactive hits and keeps the rest in the order received.
func Project(hits []Hit) []Result {
	results := make([]Result, 0, len(hits))
	for _, h := range hits {
		if !h.HasCurrentVersion {
			continue
		}
		results = append(results, Result{
			ID:           h.ID,
			DisplayName:  h.DisplayName,
			Network:      h.Network,
			Signal:       h.CurrentSignalledTokens,
			Description:  truncate(h.Description, maxDescriptionLen),
			DeploymentID: h.DeploymentID,
		})
	}
	return results
}

// DecodeHits reads data.subgraphMetadataSearch from a response body.
// Missing fields decode as empty strings.
func DecodeHits(body []byte) ([]Hit, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("search response is not valid JSON")
	}
	var hits []Hit
	gjson.GetBytes(body, "data.subgraphMetadataSearch").ForEach(func(_, meta gjson.Result) bool {
		sub := meta.Get("subgraph")
		version := sub.Get("currentVersion")
		desc := meta.Get("description").String()
		if desc == "" {
			desc = version.Get("metadata.description").String()
		}
		hits = append(hits, Hit{
			ID:                     sub.Get("id").String(),
			DisplayName:            meta.Get("displayName").String(),
			Network:                version.Get("subgraphDeployment.manifest.network").String(),
			CurrentSignalledTokens: sub.Get("currentSignalledTokens").String(),
			Description:            desc,
			DeploymentID:           version.Get("subgraphDeployment.ipfsHash").String(),
			HasCurrentVersion:      version.IsObject(),
		})
		return true
	})
	return hits, nil
}

// Run sends the metadata search for text to the network subgraph and
// projects the hits.
func Run(ctx context.Context, exec graphql.Executor, networkSubgraphID, text string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	result, err := exec.Execute(ctx, networkSubgraphID, graphql.Request{
		Query:     Query,
		Variables: map[string]any{"text": text, "first": limit},
	})
	if err != nil {
		return nil, fmt.Errorf("metadata search: %w", err)
	}
	if err := result.Response.Err(); err != nil {
		return nil, fmt.Errorf("metadata search: %w", err)
	}
	hits, err := DecodeHits(result.Body)
	if err != nil {
		return nil, err
	}
	return Project(hits), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
