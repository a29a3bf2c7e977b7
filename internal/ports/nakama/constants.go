package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a
	// lobby-capable match.
	RpcQuickMatch = "quick_match"

	// RpcVoiceToken is the Nakama RPC id clients call to obtain a signed
	// voice-channel access token.
	RpcVoiceToken = "voice_token"

	// MatchNameFiveTakes is the authoritative match handler name registered
	// with Nakama.
	MatchNameFiveTakes = "fivetakes_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame  int64 = 1
	OpSelectCard int64 = 2
	OpChooseRow  int64 = 3

	// Server -> Client events
	OpPlayerJoined      int64 = 101
	OpPlayerLeft        int64 = 102
	OpGameStarted       int64 = 103
	OpRoundStarted      int64 = 104
	OpHandDealt         int64 = 105 // sent privately
	OpCardSelected      int64 = 106
	OpRowChoiceRequired int64 = 107 // sent privately
	OpTurnResolved      int64 = 108
	OpRoundEnded        int64 = 109
	OpGameEnded         int64 = 110
	OpGameError         int64 = 111
	OpMatchState        int64 = 112
)
