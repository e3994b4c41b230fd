package kafka

import (
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fortytw2/leaktest"
	"github.com/stretchr/testify/require"
)

// fakeBroker accepts any number of connections and answers every request
// frame it reads with a FetchResponse, counting how many requests it
// actually received across all of them.
type fakeBroker struct {
	listener net.Listener
	hits     int32
}

func startFakeBroker(t *testing.T) *fakeBroker {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	fb := &fakeBroker{listener: l}

	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			go fb.serve(conn)
		}
	}()
	return fb
}

func (fb *fakeBroker) serve(conn net.Conn) {
	defer conn.Close()
	for {
		raw, err := readFrame(conn)
		if err != nil {
			return
		}
		atomic.AddInt32(&fb.hits, 1)

		pd := newRealDecoder(raw)
		reqHeader := &RequestHeader{}
		if err := reqHeader.decode(pd); err != nil {
			return
		}

		respHeader := &ResponseHeader{CorrelationID: reqHeader.CorrelationID}
		respBody := &FetchResponse{ErrorCode: ErrNoError}

		pe := newRealEncoder(nil)
		sizeOffset := pe.offset()
		pe.push(newInt32LengthField(sizeOffset))
		pe.putInt32(respHeader.CorrelationID)
		if err := respBody.encode(pe); err != nil {
			return
		}
		if err := pe.pop(); err != nil {
			return
		}
		if _, err := conn.Write(pe.raw); err != nil {
			return
		}
	}
}

func (fb *fakeBroker) addr() string {
	return fb.listener.Addr().String()
}

func (fb *fakeBroker) close() {
	fb.listener.Close()
}

// TestFetchFanOutRoutesByLeader builds a three-broker cluster with the
// partition-leader map {0:h1, 1:h1, 2:h2} and asserts h1 gets exactly one
// request (covering both its partitions in a single fan-out task) and h3
// gets none.
func TestFetchFanOutRoutesByLeader(t *testing.T) {
	defer leaktest.Check(t)()

	h1 := startFakeBroker(t)
	defer h1.close()
	h2 := startFakeBroker(t)
	defer h2.close()
	h3 := startFakeBroker(t)
	defer h3.close()

	c := &ClusterClient{
		clientID:    "roi",
		cfg:         NewConfig(),
		conns:       newConnPool(NewConfig()),
		metadata:    newMetadataCache(),
		apiVersions: map[int16]int16{apiKeyFetch: 8, apiKeyMetadata: 6},
	}
	// Closing the client drops its pooled connections, which lets the fake
	// brokers' per-connection goroutines exit before leaktest checks.
	defer c.Close()
	c.cfg.DialTimeout = 2 * time.Second

	c.metadata.update(&MetadataResponse{
		Brokers: []*Broker{
			{NodeID: 1, Host: splitHost(h1.addr()), Port: splitPort(h1.addr())},
			{NodeID: 2, Host: splitHost(h2.addr()), Port: splitPort(h2.addr())},
			{NodeID: 3, Host: splitHost(h3.addr()), Port: splitPort(h3.addr())},
		},
		Topics: []*TopicMetadata{
			{
				Name: "orders",
				Partitions: []*PartitionMetadata{
					{PartitionIndex: 0, LeaderID: 1},
					{PartitionIndex: 1, LeaderID: 1},
					{PartitionIndex: 2, LeaderID: 2},
				},
			},
		},
	})

	results, err := c.Fetch([]FetchRequestSpec{
		{Topic: "orders", Partition: 0, Offset: 0, MaxBytes: 1024},
		{Topic: "orders", Partition: 1, Offset: 0, MaxBytes: 1024},
		{Topic: "orders", Partition: 2, Offset: 0, MaxBytes: 1024},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	require.Equal(t, int32(1), atomic.LoadInt32(&h1.hits))
	require.Equal(t, int32(1), atomic.LoadInt32(&h2.hits))
	require.Equal(t, int32(0), atomic.LoadInt32(&h3.hits))
}

func splitHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

func splitPort(addr string) int32 {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return 0
	}
	var p int32
	for _, r := range port {
		p = p*10 + int32(r-'0')
	}
	return p
}
