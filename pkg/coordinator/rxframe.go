package coordinator

import (
	"regexp"
	"strconv"
	"strings"
)

// RxFrame is the parsed shape of a coordinator console "RX" line: an
// incoming ZCL frame the console has already dissected for us. All
// inbound-frame matching goes through parseRxFrame rather than scattering
// cluster/command-specific regex literals across the engine.
type RxFrame struct {
	Endpoint    string
	ClusterCode uint16
	Seq         uint8
	HasSeq      bool
	Cmd         uint8
	Payload     []byte
}

// rxLinePattern matches a canonical single-line RX frame, e.g.:
//
//	RX len 11, ep 01, clus 0x000A (Time) FC 18 seq 20 cmd 01 payload[00 00 00 E2 00 00 00 00 ]
//
// The human-readable cluster name in parens is accepted but discarded;
// its character set is deliberately permissive (letters, digits, and
// ".[]() ") since the attribute-read matcher needs the widest set.
var rxLinePattern = regexp.MustCompile(
	`^RX len \d+, ep ([0-9A-Za-z]+), clus (0x[0-9A-Fa-f]{4}) \([a-zA-Z0-9.\[\]\(\) ]*\) (.*) cmd ([0-9A-Fa-f]{2}) payload\[([0-9A-Fa-f ]*)\]$`,
)

var rxSeqPattern = regexp.MustCompile(`seq ([0-9A-Fa-f]{2})`)

// parseRxFrame parses a single canonical RX line. It returns ok=false
// for any line that is not an RX frame at all (no error — callers use
// this to filter a general inbound stream).
func parseRxFrame(line string) (*RxFrame, bool) {
	m := rxLinePattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return nil, false
	}

	clusterCode, err := strconv.ParseUint(m[2], 0, 16)
	if err != nil {
		return nil, false
	}
	cmd, err := strconv.ParseUint(m[4], 16, 8)
	if err != nil {
		return nil, false
	}

	frame := &RxFrame{
		Endpoint:    m[1],
		ClusterCode: uint16(clusterCode),
		Cmd:         uint8(cmd),
	}

	if seqMatch := rxSeqPattern.FindStringSubmatch(m[3]); seqMatch != nil {
		if seq, err := strconv.ParseUint(seqMatch[1], 16, 8); err == nil {
			frame.Seq = uint8(seq)
			frame.HasSeq = true
		}
	}

	if payload := strings.Fields(m[5]); len(payload) > 0 {
		frame.Payload = make([]byte, len(payload))
		for i, tok := range payload {
			b, err := strconv.ParseUint(tok, 16, 8)
			if err != nil {
				return nil, false
			}
			frame.Payload[i] = byte(b)
		}
	}

	return frame, true
}
