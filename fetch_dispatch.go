package kafka

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// FetchRequestSpec names one partition a caller wants fetched, at a given
// starting offset.
type FetchRequestSpec struct {
	Topic     string
	Partition int32
	Offset    int64
	MaxBytes  int32
}

// FetchResult pairs one (topic, leader) task's outcome with the broker it
// was sent to, so a caller can tell which partitions came back on the
// same response and which leader answered.
type FetchResult struct {
	LeaderID int32
	Response *FetchResponse
}

// Fetch groups specs by partition leader and fans one FetchRequest out per
// leader concurrently: one goroutine per (topic, leader) grouping, and
// every task runs to completion even if some of them error.
// This deliberately doesn't rely on errgroup's derived-context
// cancellation: each goroutine swallows its own error into a shared,
// mutex-guarded multierror instead of returning it, so one broker being
// slow or erroring never aborts fetches already in flight to the others.
func (c *ClusterClient) Fetch(specs []FetchRequestSpec) ([]FetchResult, error) {
	byLeader, err := c.groupByLeader(specs)
	if err != nil {
		return nil, err
	}

	var (
		g       errgroup.Group
		mu      sync.Mutex
		results []FetchResult
		errs    *multierror.Error
	)

	for task, group := range byLeader {
		leader, group := task.leader, group
		g.Go(func() error {
			resp, err := c.fetchLeaderWithRetry(leader, group)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("broker %d: %w", leader, err))
				return nil
			}
			results = append(results, FetchResult{LeaderID: leader, Response: resp})
			return nil
		})
	}
	_ = g.Wait()

	if errs != nil {
		return results, errs
	}
	return results, nil
}

// fetchTask identifies one fan-out task: a single topic on a single leader.
type fetchTask struct {
	leader int32
	topic  string
}

// groupByLeader resolves every spec's partition leader, triggering a
// metadata refresh for any topic the cache doesn't yet have an entry for,
// and groups the specs by (leader, topic).
func (c *ClusterClient) groupByLeader(specs []FetchRequestSpec) (map[fetchTask][]FetchRequestSpec, error) {
	missing := make(map[string]bool)
	for _, s := range specs {
		if !c.metadata.hasTopic(s.Topic) {
			missing[s.Topic] = true
		}
	}
	if len(missing) > 0 {
		topics := make([]string, 0, len(missing))
		for t := range missing {
			topics = append(topics, t)
		}
		if err := c.RefreshMetadata(topics); err != nil {
			return nil, fmt.Errorf("kafka: refreshing metadata for %v: %w", topics, err)
		}
	}

	byLeader := make(map[fetchTask][]FetchRequestSpec)
	for _, s := range specs {
		leader, ok := c.metadata.leaderFor(s.Topic, s.Partition)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d]", ErrNoRouteForTopic, s.Topic, s.Partition)
		}
		task := fetchTask{leader: leader, topic: s.Topic}
		byLeader[task] = append(byLeader[task], s)
	}
	return byLeader, nil
}

func (c *ClusterClient) fetchOneLeader(leader int32, specs []FetchRequestSpec) (*FetchResponse, error) {
	req := newFetchRequest(500, 1, 10*1024*1024)
	for _, s := range specs {
		req.AddBlock(s.Topic, s.Partition, s.Offset, s.MaxBytes, -1)
	}
	resp := &FetchResponse{}
	if err := c.dispatch(leader, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// fetchLeaderWithRetry implements a bounded retry: after a transport failure
// talking to leader, metadata for the specs' topics is refreshed and the
// same request is sent once more to the same leader; if that refresh
// fails, the original error is returned. A *response* naming a
// stale-leader error code for one or more partitions is retried once by
// refreshing metadata and re-routing just those partitions to whatever the
// cache now says their leader is.
func (c *ClusterClient) fetchLeaderWithRetry(leader int32, specs []FetchRequestSpec) (*FetchResponse, error) {
	resp, err := c.fetchOneLeader(leader, specs)
	if err != nil {
		if refreshErr := c.RefreshMetadata(topicsOf(specs)); refreshErr != nil {
			return nil, err
		}
		return c.fetchOneLeader(leader, specs)
	}

	stale := stalePartitions(resp)
	if len(stale) == 0 {
		return resp, nil
	}

	if err := c.RefreshMetadata(topicsOf(specs)); err != nil {
		return resp, nil // best effort: return what we got rather than fail the whole group
	}
	retryByLeader := make(map[int32][]FetchRequestSpec)
	for _, key := range stale {
		for _, s := range specs {
			if s.Topic == key.topic && s.Partition == key.partition {
				newLeader, ok := c.metadata.leaderFor(s.Topic, s.Partition)
				if ok {
					retryByLeader[newLeader] = append(retryByLeader[newLeader], s)
				}
			}
		}
	}
	for newLeader, group := range retryByLeader {
		retried, err := c.fetchOneLeader(newLeader, group)
		if err != nil {
			continue
		}
		mergeResponses(resp, retried)
	}
	return resp, nil
}

type partitionKey struct {
	topic     string
	partition int32
}

// stalePartitions returns the (topic, partition) pairs in resp whose error
// code indicates the cached leader for that partition has gone stale.
func stalePartitions(resp *FetchResponse) []partitionKey {
	var keys []partitionKey
	for _, t := range resp.Topics {
		for _, p := range t.Partitions {
			if staleLeaderError(p.ErrorCode) {
				keys = append(keys, partitionKey{t.Topic, p.PartitionIndex})
			}
		}
	}
	return keys
}

// mergeResponses overwrites dst's stale partitions with the matching
// partitions from src, in place.
func mergeResponses(dst, src *FetchResponse) {
	for _, st := range src.Topics {
		for _, dt := range dst.Topics {
			if dt.Topic != st.Topic {
				continue
			}
			for _, sp := range st.Partitions {
				for i, dp := range dt.Partitions {
					if dp.PartitionIndex == sp.PartitionIndex {
						dt.Partitions[i] = sp
					}
				}
			}
		}
	}
}

func topicsOf(specs []FetchRequestSpec) []string {
	seen := make(map[string]bool)
	var topics []string
	for _, s := range specs {
		if !seen[s.Topic] {
			seen[s.Topic] = true
			topics = append(topics, s.Topic)
		}
	}
	return topics
}
