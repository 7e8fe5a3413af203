package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"hydro/model"
)

type Server struct {
	addr     string
	upgrader websocket.Upgrader
	svc      *Service
}

func NewServer(addr string, upgrader websocket.Upgrader, svc *Service) *Server {
	return &Server{
		addr:     addr,
		upgrader: upgrader,
		svc:      svc,
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithField("err", err).Warn("websocket 升级失败")
		return
	}
	defer conn.Close()

	hub := NewHub(s.svc, conn)
	connections.Inc()
	defer connections.Dec()
	log.WithFields(log.Fields{"session": hub.id, "remote": r.RemoteAddr}).Info("连接建立")

	go hub.handleRequest()
	go hub.handleResponse()
	for {
		var msg model.Msg
		if err := conn.ReadJSON(&msg); err != nil {
			// 单帧格式错误只回复 error，连接继续使用
			if malformed(err) {
				hub.msg <- request{err: err}
				continue
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithFields(log.Fields{"session": hub.id, "err": err}).Warn("读取失败")
			}
			break
		}
		hub.msg <- request{msg: msg}
	}
	close(hub.msg)
	// 等待已收到的请求全部回复
	<-hub.done
	log.WithField("session", hub.id).Info("连接关闭")
}

// ReadJSON 读完整帧后解码，io.ErrUnexpectedEOF 表示帧内 JSON 不完整
func malformed(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF)
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Server) Serve() error {
	log.WithField("addr", s.addr).Info("服务启动")
	return http.ListenAndServe(s.addr, s.Handler())
}
