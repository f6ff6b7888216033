package client

import (
	"fmt"
	"github.com/ValentinKolb/hlbridge/rpc/common"
	"github.com/ValentinKolb/hlbridge/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var (
	Logger = logger.GetLogger("client")
)

// sendFrames is a helper function that sends the frames in order and stops at the first failure
func sendFrames(t transport.IRPCClientTransport, frames ...[]byte) error {
	for _, frame := range frames {
		if err := t.Send(frame); err != nil {
			return err
		}
	}
	return nil
}

// sendTags is a helper function that sends a sequence of control tags
func sendTags(t transport.IRPCClientTransport, tags ...common.ControlTag) error {
	for _, tag := range tags {
		if err := t.Send(tag.Bytes()); err != nil {
			return fmt.Errorf("failed to send %s: %w", tag, err)
		}
		Logger.Debugf("sent %s", tag)
	}
	return nil
}
