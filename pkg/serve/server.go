package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/praetorian-inc/snip/pkg/cutter"
	"github.com/praetorian-inc/snip/pkg/selection"
)

// Version is the server protocol version
const Version = "1.0.0"

// maxCached bounds the number of compiled selections kept between requests.
const maxCached = 64

// Server answers extraction requests read as NDJSON
type Server struct {
	encoder *json.Encoder
	decoder *json.Decoder
	cache   map[cutter.Options]*cutter.Core
}

// NewServer creates a new streaming server
func NewServer(in io.Reader, out io.Writer) *Server {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	return &Server{
		encoder: enc,
		decoder: json.NewDecoder(bufio.NewReader(in)),
		cache:   make(map[cutter.Options]*cutter.Core),
	}
}

// Run starts the server main loop
func (s *Server) Run(ctx context.Context) error {
	// Send ready signal
	s.sendReady()

	// Use buffered channels for incoming requests
	reqChan := make(chan Request, 1)
	errChan := make(chan error, 1)

	go func() {
		for {
			var req Request
			if err := s.decoder.Decode(&req); err != nil {
				errChan <- err
				return
			}
			select {
			case reqChan <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Process requests until stdin closes or context cancels
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errChan:
			// Drain any pending requests before handling EOF
			for {
				select {
				case req := <-reqChan:
					if s.processRequest(req) {
						return nil
					}
				default:
					if err == io.EOF {
						return nil
					}
					s.sendError("decode", err)
					return nil
				}
			}
		case req := <-reqChan:
			if s.processRequest(req) {
				return nil
			}
		}
	}
}

// processRequest handles a single request and returns true if the server should exit
func (s *Server) processRequest(req Request) bool {
	switch req.Type {
	case "cut":
		s.handleCut(req.Payload)
	case "parse":
		s.handleParse(req.Payload)
	case "close":
		return true
	default:
		s.sendError("unknown", errors.New("unknown request type: "+req.Type))
	}
	return false
}

func (s *Server) sendReady() {
	s.send("ready", ReadyData{Version: Version})
}

// compile returns the cached core for opts, parsing the list on first use.
func (s *Server) compile(opts cutter.Options) (*cutter.Core, error) {
	if core, ok := s.cache[opts]; ok {
		return core, nil
	}
	core, err := cutter.New(opts)
	if err != nil {
		return nil, err
	}
	if len(s.cache) >= maxCached {
		clear(s.cache)
	}
	s.cache[opts] = core
	return core, nil
}

func (s *Server) handleCut(payload json.RawMessage) {
	var p CutPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("cut", err)
		return
	}

	core, err := s.compile(p.Options)
	if err != nil {
		s.sendError("cut", err)
		return
	}

	s.send("cut", core.Cut(p.Lines))
}

func (s *Server) handleParse(payload json.RawMessage) {
	var p ParsePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("parse", err)
		return
	}

	ranges, err := selection.Parse(p.List)
	if err != nil {
		s.sendError("parse", err)
		return
	}

	s.send("parse", ParseData{Ranges: ranges})
}

func (s *Server) send(respType string, v any) {
	data, _ := json.Marshal(v)
	s.encoder.Encode(Response{
		Success: true,
		Type:    respType,
		Data:    data,
	})
}

func (s *Server) sendError(reqType string, err error) {
	resp := Response{
		Success: false,
		Type:    reqType,
		Error:   err.Error(),
	}
	var pe *selection.ParseError
	if errors.As(err, &pe) {
		resp.Kind = pe.Kind.String()
	}
	s.encoder.Encode(resp)
}
