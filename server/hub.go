package server

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"hydro/model"
)

const (
	MsgFormulate   = "formulate"
	MsgFormulated  = "formulated"
	MsgDistribute  = "distribute"
	MsgDistributed = "distributed"
	MsgError       = "error"

	// 无法解析的消息在指标中的类型
	msgInvalid = "invalid"
)

// 读到的一帧：解析成功时为 msg，否则为 err
type request struct {
	msg model.Msg
	err error
}

// Hub 对应一个 websocket 连接，请求按到达顺序处理
type Hub struct {
	id   string
	svc  *Service
	conn *websocket.Conn
	// request
	msg chan request
	// response
	reply chan model.Msg
	done  chan struct{}
}

func NewHub(svc *Service, conn *websocket.Conn) *Hub {
	return &Hub{
		id:    uuid.NewString(),
		svc:   svc,
		conn:  conn,
		msg:   make(chan request, 10),
		reply: make(chan model.Msg, 10),
		done:  make(chan struct{}),
	}
}

func (h *Hub) handleResponse() {
	defer close(h.done)
	for reply := range h.reply {
		if err := h.conn.WriteJSON(&reply); err != nil {
			log.WithFields(log.Fields{"session": h.id, "err": err}).Warn("发送失败")
		}
	}
}

func (h *Hub) handleRequest() {
	defer close(h.reply)
	for req := range h.msg {
		if req.err != nil {
			requestsTotal.WithLabelValues(msgInvalid).Inc()
			logger := log.WithFields(log.Fields{"session": h.id, "type": msgInvalid})
			h.reply <- h.fail(logger, msgInvalid, fmt.Errorf("decoding message: %w", req.err))
			continue
		}
		h.reply <- h.handle(req.msg)
	}
}

func (h *Hub) handle(msg model.Msg) model.Msg {
	requestsTotal.WithLabelValues(msg.Type).Inc()
	logger := log.WithFields(log.Fields{"session": h.id, "type": msg.Type})

	var (
		replyType string
		result    interface{}
		err       error
	)
	switch msg.Type {
	case MsgFormulate:
		var req model.FormulateReq
		if err = json.Unmarshal([]byte(msg.Content), &req); err != nil {
			err = fmt.Errorf("decoding %s request: %w", msg.Type, err)
			break
		}
		replyType = MsgFormulated
		result, err = h.svc.Formulate(req)
	case MsgDistribute:
		var req model.DistributeReq
		if err = json.Unmarshal([]byte(msg.Content), &req); err != nil {
			err = fmt.Errorf("decoding %s request: %w", msg.Type, err)
			break
		}
		replyType = MsgDistributed
		var resp *DistributeResp
		resp, err = h.svc.Distribute(req)
		if err == nil {
			criticalWarningsTotal.Add(float64(len(resp.Report.CriticalWarnings)))
			result = resp
		}
	default:
		err = fmt.Errorf("unknown message type %q", msg.Type)
	}
	if err != nil {
		return h.fail(logger, msg.Type, err)
	}

	data, err := json.Marshal(result)
	if err != nil {
		return h.fail(logger, msg.Type, err)
	}
	logger.Info("请求处理完成")
	return model.Msg{
		Type:    replyType,
		Content: string(data),
	}
}

func (h *Hub) fail(logger *log.Entry, msgType string, err error) model.Msg {
	errorsTotal.WithLabelValues(msgType).Inc()
	logger.WithField("err", err).Warn("请求处理失败")
	return model.Msg{
		Type:    MsgError,
		Content: err.Error(),
	}
}
