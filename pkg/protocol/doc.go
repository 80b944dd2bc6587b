// Package protocol implements the binary wire format spoken between the
// playground server and a browser client.
//
// Every WebSocket message carries exactly one frame:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (4 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
// # Frame Types
//
//   - FrameHello (0x00): server → client, session id and body node id
//   - FrameEvent (0x01): client → server, a DOM event on a node id
//   - FramePatches (0x02): server → client, a sequenced batch of mutations
//   - FrameError (0x05): either direction, coded error message
//
// # Encoding
//
//   - Varint: protobuf-style unsigned varints for ids, counts and lengths
//   - Length-prefixed: strings prefixed with a varint length
//
// A patch is the wire form of one dom.Mutation:
//
//	[Op: 1 byte][Target: varint][op-specific fields]
//
// Node ids are assigned by the server document and never reused within a
// session, so the client keeps a flat id → node table.
package protocol
