package event

import (
	"fmt"
	"sync"

	messagebus "github.com/vardius/message-bus"
	"vincit.fi/similar-images/api"
	"vincit.fi/similar-images/api/apitype"
	"vincit.fi/similar-images/common/logger"
)

// Broker publishes commands to subscribers asynchronously. Each subscriber
// receives messages of a topic in publish order.
type Broker struct {
	bus    messagebus.MessageBus
	mux    sync.Mutex
	topics map[api.Topic]bool

	api.Sender
}

func InitBus(queueSize int) *Broker {
	return &Broker{
		bus:    messagebus.New(queueSize),
		topics: map[api.Topic]bool{},
	}
}

func (s *Broker) Subscribe(topic api.Topic, fn interface{}) {
	s.mux.Lock()
	defer s.mux.Unlock()

	if err := s.bus.Subscribe(string(topic), fn); err != nil {
		logger.Error.Panic("Could not subscribe", err)
	}
	s.topics[topic] = true
}

func (s *Broker) SendToTopic(topic api.Topic) {
	logger.Trace.Printf("Sending to '%s'", topic)
	s.bus.Publish(string(topic))
}

func (s *Broker) SendCommandToTopic(topic api.Topic, command apitype.Command) {
	logger.Trace.Printf("Sending command to '%s'", topic)
	s.bus.Publish(string(topic), command)
}

func (s *Broker) SendError(message string, err error) {
	formattedMessage := ""
	if err != nil {
		formattedMessage = fmt.Sprintf("%s\n%s", message, err.Error())
	} else {
		formattedMessage = message
	}
	logger.Error.Printf("Error: %s", formattedMessage)
	s.SendCommandToTopic(api.ShowError, &api.ErrorCommand{Message: formattedMessage})
}

// Close stops the handlers of every subscribed topic. Messages already
// queued are still delivered.
func (s *Broker) Close() {
	s.mux.Lock()
	defer s.mux.Unlock()

	for topic := range s.topics {
		s.bus.Close(string(topic))
	}
	s.topics = map[api.Topic]bool{}
}
