package main

import (
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"sync"

	sse "github.com/alexandrevicenzi/go-sse"
	"github.com/gorilla/mux"

	"imgcarve/carve"
	"imgcarve/gcode"
	"imgcarve/svg"
)

type api struct {
	http.Handler

	img    image.Image
	svgOpt svg.Options
	sse    *sse.Server

	mx  sync.Mutex
	opt carve.Options
	g   *gcode.Generator
}

func newAPI(img image.Image, opt carve.Options, g *gcode.Generator, svgOpt svg.Options) *api {
	r := mux.NewRouter()

	a := &api{
		Handler: r,
		img:     img,
		opt:     opt,
		g:       g,
		svgOpt:  svgOpt,
		sse: sse.NewServer(&sse.Options{
			Logger: log.New(io.Discard, "", 0),
		}),
	}

	r.HandleFunc("/", a.index).Methods("GET")
	r.HandleFunc("/program.gcode", a.program).Methods("GET")
	r.HandleFunc("/preview.svg", a.preview).Methods("GET")
	r.HandleFunc("/api/carve", a.carve).Methods("POST")
	r.PathPrefix("/events/").Handler(a.sse)

	return a
}

func (a *api) program(w http.ResponseWriter, req *http.Request) {
	a.mx.Lock()
	p := a.g.Program()
	a.mx.Unlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, p+"\n")
}

func (a *api) preview(w http.ResponseWriter, req *http.Request) {
	a.mx.Lock()
	doc := svg.Render(a.g.Segments(), a.svgOpt)
	a.mx.Unlock()

	w.Header().Set("Content-Type", "image/svg+xml")
	io.WriteString(w, doc)
}

// carve regenerates the program from the loaded image, streaming row
// progress to /events/progress.
func (a *api) carve(w http.ResponseWriter, req *http.Request) {
	a.mx.Lock()
	defer a.mx.Unlock()

	opt := a.opt
	opt.Progress = func(row, total int) {
		a.sse.SendMessage("/events/progress", sse.SimpleMessage(fmt.Sprintf("%d/%d", row, total)))
	}

	a.g.Reset()
	err := carve.Trace(a.img, opt, a.g)
	if err != nil {
		log.Printf("ERROR: carve: %+v", err)
		http.Error(w, err.Error(), 500)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *api) index(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, indexPage)
}

const indexPage = `<!doctype html>
<html>
<head><title>imgcarve</title></head>
<body>
<h1>imgcarve</h1>
<p>
<button onclick="recarve()">Re-carve</button>
<span id="progress"></span>
<a href="/program.gcode">program.gcode</a>
</p>
<img id="preview" src="/preview.svg" alt="toolpath preview">
<script>
var ev = new EventSource("/events/progress");
ev.onmessage = function(e) {
	document.getElementById("progress").textContent = e.data;
};
function recarve() {
	fetch("/api/carve", {method: "POST"}).then(function() {
		document.getElementById("preview").src = "/preview.svg?" + Date.now();
	});
}
</script>
</body>
</html>
`
