// Package client implements the frontend side of the placement protocol. It is used
// by the solve command and by tests of the backend.
//
// Key Components:
//
//   - NewPlacerClient: Factory function that connects the transport and returns an
//     IPlacerClient.
//
//   - IPlacerClient: One method per protocol step. Each step ends with an INIT tag so
//     the backend is back in its idle state between two steps.
//
// Usage Example:
//
//	config := common.ClientConfig{
//	  TimeoutSecond: 30,
//	  Transport: common.ClientTransportConfig{
//	    Endpoint:            "localhost:1111",
//	    RetryCount:          3,
//	    RetryIntervalSecond: common.DefaultRetryIntervalSecond,
//	  },
//	}
//
//	c, err := client.NewPlacerClient(config, tcp.NewTCPClientTransport(), serializer.NewProtoSerializer())
//	if err != nil {
//	  log.Fatal(err)
//	}
//	defer c.Disconnect()
//
//	_ = c.TransmitProblem(desc)
//	_ = c.SolveProblem()
//	solution, _ := c.GetSolution()
//
// Thread Safety:
//
//	A client drives a single sequential session and must not be used concurrently.
package client
