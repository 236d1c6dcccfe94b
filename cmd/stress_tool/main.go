package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

var httpClient *http.Client

func init() {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 2000
	t.MaxIdleConnsPerHost = 2000
	t.MaxConnsPerHost = 2000
	httpClient = &http.Client{
		Transport: t,
		Timeout:   10 * time.Second,
	}
}

type result struct {
	status int
	liked  *bool
}

func main() {
	baseURL := flag.String("base", "http://localhost:8080/api/v1", "API 地址")
	token := flag.String("token", "", "Bearer token，点赞压测需要")
	videoID := flag.String("video", "", "点赞压测的视频 id，为空则只压列表")
	total := flag.Int("n", 1000, "并发请求数")
	flag.Parse()

	// 1. 并发拉取视频列表
	run(fmt.Sprintf("GET %s/videos", *baseURL), *total, func(int) result {
		return do(http.MethodGet, *baseURL+"/videos?page=1&limit=10", *token)
	})

	// 2. 同一用户并发切换点赞，检查最终状态
	if *videoID == "" || *token == "" {
		return
	}
	results := run(fmt.Sprintf("POST %s/likes/toggle/v/%s", *baseURL, *videoID), *total, func(int) result {
		return do(http.MethodPost, *baseURL+"/likes/toggle/v/"+*videoID, *token)
	})
	liked, unliked := 0, 0
	for _, r := range results {
		if r.liked == nil {
			continue
		}
		if *r.liked {
			liked++
		} else {
			unliked++
		}
	}
	fmt.Printf("点赞: %d, 取消: %d\n", liked, unliked)
	final := do(http.MethodGet, *baseURL+"/videos/"+*videoID, *token)
	fmt.Printf("最终视频状态码: %d\n", final.status)
}

func run(name string, n int, fn func(int) result) []result {
	fmt.Printf("开始压测 %s，并发 %d...\n", name, n)

	var wg sync.WaitGroup
	results := make([]result, n)
	start := time.Now()
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = fn(i)
		}(i)
	}
	wg.Wait()
	duration := time.Since(start)

	byStatus := map[int]int{}
	for _, r := range results {
		byStatus[r.status]++
	}
	fmt.Println("--------------------------------------------------")
	fmt.Printf("耗时: %v\n", duration)
	fmt.Printf("QPS: %.2f\n", float64(n)/duration.Seconds())
	fmt.Printf("状态码分布: %v\n", byStatus)
	fmt.Println("--------------------------------------------------")
	return results
}

func do(method, url, token string) result {
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return result{}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		// 连接失败记为 0
		return result{}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return result{status: resp.StatusCode}
	}
	var payload struct {
		Data struct {
			IsLiked *bool `json:"isLiked"`
		} `json:"data"`
	}
	_ = json.Unmarshal(body, &payload)
	return result{status: resp.StatusCode, liked: payload.Data.IsLiked}
}
