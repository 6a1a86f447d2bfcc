// Package serve implements a line-delimited JSON protocol over stdin/stdout
// for driving the simulator from another process without per-query startup
// cost.
package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/praetorian-inc/ariadne/pkg/desc"
	"github.com/praetorian-inc/ariadne/pkg/types"
)

// Version is the server protocol version
const Version = "1.0.0"

// Server manages the streaming simulator
type Server struct {
	encoder *json.Encoder
	decoder *json.Decoder
}

// NewServer creates a new streaming server
func NewServer(in io.Reader, out io.Writer) *Server {
	return &Server{
		encoder: json.NewEncoder(out),
		decoder: json.NewDecoder(bufio.NewReader(in)),
	}
}

// Run reads requests until the input closes, the context cancels or a close
// request arrives. The ready response is emitted before the first read.
func (s *Server) Run(ctx context.Context) error {
	s.reply(dataResponse("ready", ReadyData{Version: Version}))

	reqChan := make(chan Request, 1)
	errChan := make(chan error, 1)

	// Decode on a separate goroutine so cancellation is honored even while
	// blocked on a read.
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

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errChan:
			// A decoded request may still be parked in reqChan; serve it
			// before acting on the read failure.
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
					s.reply(errorResponse("decode", err.Error()))
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

// processRequest dispatches one request, reporting whether the server should
// exit.
func (s *Server) processRequest(req Request) bool {
	switch req.Type {
	case "simulate":
		s.reply(s.handleSimulate(req.Payload))
	case "simulate_batch":
		s.reply(s.handleSimulateBatch(req.Payload))
	case "close":
		return true
	default:
		s.reply(errorResponse("unknown", "unknown request type: "+req.Type))
	}
	return false
}

func (s *Server) handleSimulate(payload json.RawMessage) Response {
	var p SimulatePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return errorResponse("simulate", err.Error())
	}

	result, err := simulate(p)
	if err != nil {
		return errorResponse("simulate", err.Error())
	}
	return dataResponse("simulate", result)
}

// handleSimulateBatch runs every item or none: a batch with any bad item
// yields a single error response.
func (s *Server) handleSimulateBatch(payload json.RawMessage) Response {
	var p SimulateBatchPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return errorResponse("simulate_batch", err.Error())
	}

	results := make([]*SimulateResult, 0, len(p.Items))
	for _, item := range p.Items {
		result, err := simulate(item)
		if err != nil {
			return errorResponse("simulate_batch", err.Error())
		}
		results = append(results, result)
	}
	return dataResponse("simulate_batch", results)
}

// simulate compiles and runs one description. The payload's input, when set,
// takes precedence over the description's input: line.
func simulate(p SimulatePayload) (*SimulateResult, error) {
	d, err := desc.Parse([]byte(p.Description))
	if err != nil {
		return nil, err
	}

	input := d.Input
	switch {
	case p.Input != nil:
		input = *p.Input
	case !d.HasInput:
		return nil, fmt.Errorf("description has no input: line and no input was provided")
	}

	path, err := d.Automaton.Run(input)
	if err != nil {
		return nil, err
	}

	return &SimulateResult{
		Name:     p.Name,
		Input:    input,
		Accepted: path != nil,
		Output:   types.RenderOutcome(path),
		Path:     path,
	}, nil
}

// reply writes one response line.
func (s *Server) reply(resp Response) {
	s.encoder.Encode(resp)
}

func dataResponse(reqType string, v any) Response {
	data, _ := json.Marshal(v)
	return Response{Success: true, Type: reqType, Data: data}
}

func errorResponse(reqType, msg string) Response {
	return Response{Success: false, Type: reqType, Error: msg}
}
