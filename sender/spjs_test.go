package sender

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

var upgrader = websocket.Upgrader{}

// newBridge serves a fake SPJS endpoint and returns its ws:// URL.
func newBridge(t *testing.T, handle func(ws *websocket.Conn)) string {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ws, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			return
		}
		defer ws.Close()
		handle(ws)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func readBatch(t *testing.T, ws *websocket.Conn) spjsJSON {
	_, data, err := ws.ReadMessage()
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "sendjson "))

	var j spjsJSON
	assert.NoError(t, json.Unmarshal(data[len("sendjson "):], &j))
	assert.NotEmpty(t, j.Data)
	return j
}

func complete(ws *websocket.Conn, id string) {
	ws.WriteMessage(websocket.TextMessage, []byte(`{"Cmd":"Complete","Id":"`+id+`"}`))
}

func TestSPJS_Send(t *testing.T) {
	batches := make(chan spjsJSON, 2)

	url := newBridge(t, func(ws *websocket.Conn) {
		_, data, err := ws.ReadMessage()
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, "open /dev/ttyUSB0 grbl 115200", string(data))

		for i := 0; i < 2; i++ {
			j := readBatch(t, ws)
			batches <- j

			// non-JSON echoes must be skipped by the client,
			// and so must a Complete for an earlier batch
			ws.WriteMessage(websocket.TextMessage, []byte("queued "+j.Port))
			complete(ws, j.Data[len(j.Data)-1].ID)
		}
	})

	sp, err := DialSPJS(url, "/dev/ttyUSB0", 115200)
	assert.NoError(t, err)
	defer sp.Close()

	var program strings.Builder
	program.WriteString("; carving program\n\n")
	for i := 0; i < 150; i++ {
		program.WriteString("G1 X1.0000 ; Linear move to x=1.0000\n")
	}
	assert.NoError(t, sp.Send(program.String()))

	// 150 command lines split at the 100-line batch boundary,
	// comments stripped
	b := <-batches
	assert.Equal(t, "/dev/ttyUSB0", b.Port)
	assert.Len(t, b.Data, 100)
	assert.Equal(t, "G1 X1.0000\n", b.Data[0].Data)
	b = <-batches
	assert.Len(t, b.Data, 50)
}

func TestSPJS_Send_Error(t *testing.T) {
	url := newBridge(t, func(ws *websocket.Conn) {
		ws.ReadMessage() // open
		readBatch(t, ws)
		ws.WriteMessage(websocket.TextMessage, []byte(`{"Error":"Could not find port"}`))
	})

	sp, err := DialSPJS(url, "/dev/ttyUSB0", 115200)
	assert.NoError(t, err)
	defer sp.Close()

	assert.EqualError(t, sp.Send("G21\n"), "Could not find port")
}

func TestSPJS_Send_WipedQueue(t *testing.T) {
	url := newBridge(t, func(ws *websocket.Conn) {
		ws.ReadMessage() // open
		readBatch(t, ws)
		ws.WriteMessage(websocket.TextMessage, []byte(`{"Cmd":"WipedQueue"}`))
	})

	sp, err := DialSPJS(url, "/dev/ttyUSB0", 115200)
	assert.NoError(t, err)
	defer sp.Close()

	assert.EqualError(t, sp.Send("G21\n"), "queue wiped before completion")
}

func TestSPJS_Send_NothingToSend(t *testing.T) {
	url := newBridge(t, func(ws *websocket.Conn) {
		ws.ReadMessage() // open; no batches follow
	})

	sp, err := DialSPJS(url, "/dev/ttyUSB0", 115200)
	assert.NoError(t, err)
	defer sp.Close()

	// a comment-only program sends no batches and waits for nothing
	assert.NoError(t, sp.Send("; only comments\n\n"))
}

func TestSPJS_BatchIDs(t *testing.T) {
	// ids must be unique across batches
	a, b := nextID(), nextID()
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "cmd_"))
}
