package kafka

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeProduceBroker answers every ProduceRequest with a successful ack at
// a fixed offset, ignoring the request body's contents beyond the header.
type fakeProduceBroker struct {
	listener net.Listener
	offset   int64
}

func startFakeProduceBroker(t *testing.T, offset int64) *fakeProduceBroker {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	fb := &fakeProduceBroker{listener: l, offset: offset}
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

func (fb *fakeProduceBroker) serve(conn net.Conn) {
	defer conn.Close()
	for {
		raw, err := readFrame(conn)
		if err != nil {
			return
		}
		pd := newRealDecoder(raw)
		reqHeader := &RequestHeader{}
		if err := reqHeader.decode(pd); err != nil {
			return
		}

		resp := &ProduceResponse{
			Version: 6,
			Blocks: map[string]map[int32]*ProduceResponseBlock{
				"orders": {0: {Err: ErrNoError, Offset: fb.offset}},
			},
		}
		pe := newRealEncoder(nil)
		sizeOffset := pe.offset()
		pe.push(newInt32LengthField(sizeOffset))
		pe.putInt32(reqHeader.CorrelationID)
		if err := resp.encode(pe); err != nil {
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

func (fb *fakeProduceBroker) addr() string { return fb.listener.Addr().String() }
func (fb *fakeProduceBroker) close()       { fb.listener.Close() }

func TestProduceReturnsBrokerAssignedOffset(t *testing.T) {
	broker := startFakeProduceBroker(t, 42)
	defer broker.close()

	c := &ClusterClient{
		clientID:    "roi",
		cfg:         NewConfig(),
		conns:       newConnPool(NewConfig()),
		metadata:    newMetadataCache(),
		apiVersions: map[int16]int16{apiKeyProduce: 6, apiKeyMetadata: 6},
	}
	c.metadata.update(&MetadataResponse{
		Brokers: []*Broker{{NodeID: 1, Host: splitHost(broker.addr()), Port: splitPort(broker.addr())}},
		Topics: []*TopicMetadata{
			{Name: "orders", Partitions: []*PartitionMetadata{{PartitionIndex: 0, LeaderID: 1}}},
		},
	})

	offset, err := c.Produce("orders", 0, []byte("k"), []byte("v"))
	require.NoError(t, err)
	require.Equal(t, int64(42), offset)
}
