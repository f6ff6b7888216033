package client

import (
	"fmt"
	"github.com/ValentinKolb/hlbridge/lib/circuit"
	"github.com/ValentinKolb/hlbridge/rpc/common"
	"github.com/ValentinKolb/hlbridge/rpc/serializer"
	"github.com/ValentinKolb/hlbridge/rpc/transport"
)

// IPlacerClient is the frontend side of the placement protocol.
// Every operation returns the backend to the Init state before it returns.
type IPlacerClient interface {
	// TransmitProblem uploads the circuit description
	TransmitProblem(desc *circuit.Description) error
	// SolveProblem lets the backend run its solver
	SolveProblem() error
	// GetSolution downloads the placed circuit description
	GetSolution() (*circuit.Description, error)
	// Configure sends a single raw control tag
	Configure(tag common.ControlTag) error
	// Disconnect terminates the backend session and closes the connection
	Disconnect() error
}

// NewPlacerClient connects the transport and creates a new placer client
// The function takes a config, a transport and a serializer as parameters
func NewPlacerClient(
	config common.ClientConfig,
	transport transport.IRPCClientTransport,
	serializer serializer.ICircuitSerializer,
) (IPlacerClient, error) {

	// Connect the transport
	if err := transport.Connect(config); err != nil {
		return nil, err
	}

	return &placerClient{
		config:     config,
		transport:  transport,
		serializer: serializer,
	}, nil
}

type placerClient struct {
	config     common.ClientConfig
	transport  transport.IRPCClientTransport
	serializer serializer.ICircuitSerializer
}

// --------------------------------------------------------------------------
// Interface Methods (docu see IPlacerClient)
// --------------------------------------------------------------------------

func (c *placerClient) TransmitProblem(desc *circuit.Description) error {
	payload, err := c.serializer.Serialize(desc)
	if err != nil {
		return fmt.Errorf("failed to encode problem: %w", err)
	}

	Logger.Infof("Transmitting problem with %d macros (%d bytes)", desc.Len(), len(payload))
	if err := sendTags(c.transport, common.TagSetProblem); err != nil {
		return err
	}
	if err := sendFrames(c.transport, payload); err != nil {
		return fmt.Errorf("failed to send problem: %w", err)
	}
	return sendTags(c.transport, common.TagInit)
}

func (c *placerClient) SolveProblem() error {
	Logger.Infof("Requesting solve")
	return sendTags(c.transport, common.TagSolveProblem, common.TagInit)
}

func (c *placerClient) GetSolution() (*circuit.Description, error) {
	if err := sendTags(c.transport, common.TagGetSolution); err != nil {
		return nil, err
	}

	payload, err := c.transport.Receive()
	if err != nil {
		return nil, fmt.Errorf("failed to receive solution: %w", err)
	}

	if err := sendTags(c.transport, common.TagInit); err != nil {
		return nil, err
	}

	desc := circuit.New()
	if err := c.serializer.Deserialize(payload, desc); err != nil {
		return nil, &common.SchemaError{Err: fmt.Errorf("failed to decode solution: %w", err)}
	}

	Logger.Infof("Received solution with %d macros", desc.Len())
	return desc, nil
}

func (c *placerClient) Configure(tag common.ControlTag) error {
	return sendTags(c.transport, tag)
}

func (c *placerClient) Disconnect() error {
	sendErr := sendTags(c.transport, common.TagTerminate)
	closeErr := c.transport.Close()
	if sendErr != nil {
		return sendErr
	}
	return closeErr
}
