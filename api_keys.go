package kafka

// Numeric API keys for the nine APIs this client speaks.
const (
	apiKeyProduce         int16 = 0
	apiKeyFetch           int16 = 1
	apiKeyListOffsets     int16 = 2
	apiKeyMetadata        int16 = 3
	apiKeyOffsetCommit    int16 = 8
	apiKeyFindCoordinator int16 = 10
	apiKeyJoinGroup       int16 = 11
	apiKeyApiVersions     int16 = 18
	apiKeyCreateTopics    int16 = 19
	apiKeyDeleteTopics    int16 = 20
)

// clientSupportedVersions is the closed set of (apiKey -> versions this
// client has an encoder/decoder for), used during negotiation in
// cluster_client.go. Each API lists exactly the one version this engine
// encodes and decodes.
var clientSupportedVersions = map[int16][]int16{
	apiKeyProduce:         {6},
	apiKeyFetch:           {8},
	apiKeyListOffsets:     {3},
	apiKeyMetadata:        {6},
	apiKeyOffsetCommit:    {6},
	apiKeyFindCoordinator: {2},
	apiKeyJoinGroup:       {3},
	apiKeyApiVersions:     {1},
	apiKeyCreateTopics:    {3},
	apiKeyDeleteTopics:    {3},
}
