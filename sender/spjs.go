package sender

import (
	"encoding/json"
	"errors"
	"strconv"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

var lastID int64

func nextID() string {
	id := atomic.AddInt64(&lastID, 1)
	return "cmd_" + strconv.FormatInt(id, 36)
}

// SPJS sends a program through a Serial Port JSON Server, the websocket
// bridge commonly used to reach a networked controller.
type SPJS struct {
	ws   *websocket.Conn
	port string
}

type spjsJSON struct {
	Port string `json:"P"`
	Data []spjsData
}
type spjsData struct {
	Data string `json:"D"`
	ID   string `json:"Id"`
}
type spjsStatus struct {
	Cmd   string
	ID    string `json:"Id"`
	Error string
}

// DialSPJS connects to the bridge and opens the named port.
func DialSPJS(url, port string, baud int) (*SPJS, error) {
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}

	sp := &SPJS{ws: ws, port: port}
	err = ws.WriteMessage(websocket.TextMessage, []byte("open "+port+" grbl "+strconv.Itoa(baud)))
	if err != nil {
		ws.Close()
		return nil, err
	}

	return sp, nil
}

func (sp *SPJS) Close() error { return sp.ws.Close() }

// Send queues the program in batches of 100 lines and blocks until the
// bridge reports the last batch complete.
func (sp *SPJS) Send(program string) error {
	lines := commandLines(program)

	var last string
	for len(lines) > 0 {
		n := len(lines)
		if n > 100 {
			n = 100
		}

		j := spjsJSON{Port: sp.port}
		for _, line := range lines[:n] {
			j.Data = append(j.Data, spjsData{Data: line + "\n", ID: nextID()})
		}
		lines = lines[n:]
		last = j.Data[n-1].ID

		data, err := json.Marshal(j)
		if err != nil {
			return err
		}
		err = sp.ws.WriteMessage(websocket.TextMessage, append([]byte("sendjson "), data...))
		if err != nil {
			return err
		}
	}

	if last == "" {
		return nil
	}
	return sp.waitComplete(last)
}

func (sp *SPJS) waitComplete(id string) error {
	for {
		_, data, err := sp.ws.ReadMessage()
		if err != nil {
			return err
		}
		if len(data) == 0 || data[0] != '{' {
			// ignore echo messages
			continue
		}

		var msg spjsStatus
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Error != "" {
			return errors.New(msg.Error)
		}
		switch msg.Cmd {
		case "WipedQueue":
			return errors.New("queue wiped before completion")
		case "Complete":
			if msg.ID == id {
				return nil
			}
		}
	}
}
