package download

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

var pdfContent = []byte("%PDF-1.4\nfake pdf body")

func TestDownloader_DirectDownloadSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(pdfContent)
	}))
	defer server.Close()

	savePath := filepath.Join(t.TempDir(), "guide.pdf")
	d := NewDownloader(DefaultConfig())

	if !d.Download(server.URL+"/guide.pdf", savePath) {
		t.Fatal("下载应成功")
	}

	data, err := os.ReadFile(savePath)
	if err != nil {
		t.Fatalf("读取下载文件失败: %v", err)
	}
	if !bytes.Equal(data, pdfContent) {
		t.Errorf("文件内容不符: %q", data)
	}
}

func TestDownloader_FallsBackToStream(t *testing.T) {
	// 第一次请求(直接下载)失败,之后的请求(流式回退)成功
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&requests, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write(pdfContent)
	}))
	defer server.Close()

	savePath := filepath.Join(t.TempDir(), "guide.pdf")
	d := NewDownloader(DefaultConfig())

	if !d.Download(server.URL+"/guide.pdf", savePath) {
		t.Fatal("流式回退应成功")
	}

	if n := atomic.LoadInt32(&requests); n != 2 {
		t.Errorf("请求次数 = %d, want 2 (直接+回退)", n)
	}

	data, _ := os.ReadFile(savePath)
	if !bytes.Equal(data, pdfContent) {
		t.Errorf("文件内容不符: %q", data)
	}
}

func TestDownloader_HTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	savePath := filepath.Join(t.TempDir(), "guide.pdf")
	d := NewDownloader(DefaultConfig())

	if d.Download(server.URL+"/missing.pdf", savePath) {
		t.Error("404应返回false")
	}
	if _, err := os.Stat(savePath); !os.IsNotExist(err) {
		t.Error("失败的下载不应留下文件")
	}
}

func TestDownloader_TransportFailure(t *testing.T) {
	// 先起再关,拿到一个必然拒绝连接的地址
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := server.URL
	server.Close()

	savePath := filepath.Join(t.TempDir(), "guide.pdf")
	d := NewDownloader(DefaultConfig())

	if d.Download(deadURL+"/guide.pdf", savePath) {
		t.Error("连接拒绝应返回false")
	}
}

func TestDownloader_CustomHeaders(t *testing.T) {
	var gotUA, gotReferer string
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 只考察流式回退请求的头部
		if atomic.AddInt32(&requests, 1) == 1 {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		gotUA = r.Header.Get("User-Agent")
		gotReferer = r.Header.Get("Referer")
		_, _ = w.Write(pdfContent)
	}))
	defer server.Close()

	config := Config{
		Timeout:   5,
		UserAgent: "custom-agent/1.0",
		Headers:   map[string]string{"Referer": "https://example.com/search"},
	}

	savePath := filepath.Join(t.TempDir(), "guide.pdf")
	d := NewDownloader(config)

	if !d.Download(server.URL+"/guide.pdf", savePath) {
		t.Fatal("下载应成功")
	}
	if gotUA != "custom-agent/1.0" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if gotReferer != "https://example.com/search" {
		t.Errorf("Referer = %q", gotReferer)
	}
}

func TestNewDownloader_AppliesDefaults(t *testing.T) {
	d := NewDownloader(Config{})

	if d.config.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %d, want %d", d.config.Timeout, DefaultTimeout)
	}
	if d.config.UserAgent != DefaultUserAgent {
		t.Errorf("UserAgent = %q", d.config.UserAgent)
	}
	if d.client.Jar == nil {
		t.Error("下载器应配置Cookie jar")
	}
}

func TestDecompressBody(t *testing.T) {
	payload := "%PDF-1.4 compressed"

	t.Run("gzip", func(t *testing.T) {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		_, _ = gw.Write([]byte(payload))
		_ = gw.Close()

		reader, err := decompressBody("gzip", &buf)
		if err != nil {
			t.Fatalf("decompressBody() error = %v", err)
		}
		data, _ := io.ReadAll(reader)
		if string(data) != payload {
			t.Errorf("解压结果 = %q", data)
		}
	})

	t.Run("无压缩", func(t *testing.T) {
		reader, err := decompressBody("", strings.NewReader(payload))
		if err != nil {
			t.Fatalf("decompressBody() error = %v", err)
		}
		data, _ := io.ReadAll(reader)
		if string(data) != payload {
			t.Errorf("结果 = %q", data)
		}
	})

	t.Run("未知编码原样透传", func(t *testing.T) {
		reader, err := decompressBody("zstd", strings.NewReader(payload))
		if err != nil {
			t.Fatalf("decompressBody() error = %v", err)
		}
		data, _ := io.ReadAll(reader)
		if string(data) != payload {
			t.Errorf("结果 = %q", data)
		}
	})

	t.Run("损坏的gzip返回错误", func(t *testing.T) {
		if _, err := decompressBody("gzip", strings.NewReader("not gzip")); err == nil {
			t.Error("损坏的gzip流应返回错误")
		}
	})
}
