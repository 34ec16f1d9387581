package tele

import (
	"context"
	"fmt"
	"net/url"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/hmikit/multipage/helpers"
	"github.com/hmikit/multipage/log2"
	tele_config "github.com/hmikit/multipage/tele/config"
	"github.com/juju/errors"
)

type transportMqtt struct {
	log       *log2.Log
	onCommand func([]byte) bool
	m         mqtt.Client
	mopt      *mqtt.ClientOptions

	topicPrefix  string
	topicConnect string
	topicState   string
	topicEvent   string
	topicCommand string
}

var _ Transporter = new(transportMqtt)

func (self *transportMqtt) Init(ctx context.Context, log *log2.Log, teleConfig tele_config.Config, onCommand CommandCallback) error {
	self.log = log
	mqtt.ERROR = log
	mqtt.CRITICAL = log
	mqtt.WARN = log
	if teleConfig.LogDebug {
		mqtt.DEBUG = log
	}
	if !teleConfig.Enabled {
		return nil
	}
	if _, err := url.ParseRequestURI(teleConfig.MqttBroker); err != nil {
		return errors.Annotatef(err, "tele broker=%s", teleConfig.MqttBroker)
	}

	mqttClientId := fmt.Sprintf("hmi%d", teleConfig.DeviceId)
	credFun := func() (string, string) {
		return mqttClientId, teleConfig.MqttPassword
	}

	self.onCommand = func(payload []byte) bool {
		return onCommand(ctx, payload)
	}
	self.topicPrefix = mqttClientId // coincidence
	self.topicConnect = fmt.Sprintf("%s/c", self.topicPrefix)
	self.topicState = fmt.Sprintf("%s/w/1s", self.topicPrefix)
	self.topicEvent = fmt.Sprintf("%s/w/1e", self.topicPrefix)
	self.topicCommand = fmt.Sprintf("%s/r/c", self.topicPrefix)
	keepAlive := helpers.IntSecondDefault(teleConfig.KeepaliveSec, 60)
	pingTimeout := helpers.IntSecondDefault(teleConfig.PingTimeoutSec, 30)
	retryInterval := helpers.IntSecondDefault(teleConfig.KeepaliveSec/2, 30)

	self.mopt = mqtt.NewClientOptions().
		AddBroker(teleConfig.MqttBroker).
		SetBinaryWill(self.topicConnect, []byte{byte(StateDisconnected)}, 1, true).
		SetCleanSession(false).
		SetClientID(mqttClientId).
		SetCredentialsProvider(credFun).
		SetDefaultPublishHandler(self.messageHandler).
		SetKeepAlive(keepAlive).
		SetPingTimeout(pingTimeout).
		SetOrderMatters(false).
		SetResumeSubs(true).
		SetConnectRetryInterval(retryInterval).
		SetOnConnectHandler(self.onConnectHandler).
		SetConnectionLostHandler(self.connectLostHandler).
		SetConnectRetry(true)
	if teleConfig.StorePath != "" {
		self.mopt.SetStore(mqtt.NewFileStore(teleConfig.StorePath))
	}
	self.m = mqtt.NewClient(self.mopt)
	sConnToken := self.m.Connect()
	if sConnToken.Error() != nil {
		self.log.Errorf("tele connect err=%v", sConnToken.Error())
	}
	return nil
}

func (self *transportMqtt) CloseTele() {
	if self.m == nil {
		return
	}
	self.log.Infof("mqtt unsubscribe")
	if token := self.m.Unsubscribe(self.topicCommand); token.Wait() && token.Error() != nil {
		self.log.Infof("mqtt unsubscribe error")
	}
}

func (self *transportMqtt) SendState(payload []byte) bool {
	if self.m == nil {
		return true
	}
	self.log.Debugf("tele sendstate payload=%x", payload)
	self.m.Publish(self.topicState, 1, false, payload)
	return true
}

func (self *transportMqtt) SendEvent(payload []byte) bool {
	if self.m == nil {
		return true
	}
	token := self.m.Publish(self.topicEvent, 1, false, payload)
	token.Wait()
	return token.Error() == nil
}

func (self *transportMqtt) messageHandler(c mqtt.Client, msg mqtt.Message) {
	payload := msg.Payload()
	self.log.Infof("mqtt income message (%x)", payload)
	self.onCommand(payload)
}

func (self *transportMqtt) connectLostHandler(c mqtt.Client, err error) {
	self.log.Infof("mqtt disconnect")
}

func (self *transportMqtt) onConnectHandler(c mqtt.Client) {
	self.log.Infof("mqtt connect")
	if token := c.Subscribe(self.topicCommand, 1, nil); token.Wait() && token.Error() != nil {
		self.log.Infof("mqtt subscribe error")
	} else {
		self.log.Infof("mqtt subscribe Ok")
		c.Publish(self.topicConnect, 1, true, []byte{byte(StateBoot)})
	}
}
