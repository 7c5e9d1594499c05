package redis

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	Reply "github.com/Ashwin-Surana/vertx-redis-client/resp/reply"
	"github.com/Ashwin-Surana/vertx-redis-client/redistest"
)

// startPair 内嵌服务端加已连接的客户端
func startPair(t *testing.T) (*Client, *redistest.Server) {
	t.Helper()
	server, err := redistest.StartServer()
	require.NoError(t, err)
	t.Cleanup(server.Close)
	client := makeTestClient(t, server)
	require.NoError(t, client.Start().Err())
	return client, server
}

func makeTestClient(t *testing.T, server *redistest.Server) *Client {
	t.Helper()
	client, err := MakeClient(&Config{Host: server.Host(), Port: server.Port()})
	require.NoError(t, err)
	t.Cleanup(func() { client.Stop().Err() })
	return client
}

func awaitNotification(t *testing.T, ch <-chan Notification) Notification {
	t.Helper()
	select {
	case notification := <-ch:
		return notification
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
		return Notification{}
	}
}

func TestAppendGet(t *testing.T) {
	client, _ := startPair(t)

	count, err := client.Append("mykey", "Hello").Int()
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)

	count, err = client.Append("mykey", " World").Int()
	require.NoError(t, err)
	assert.Equal(t, int64(11), count)

	value, err := client.Get("mykey").Text()
	require.NoError(t, err)
	assert.Equal(t, "Hello World", value)
}

func TestDecrDecrBy(t *testing.T) {
	client, _ := startPair(t)

	require.NoError(t, client.Set("counter", "10").Err())
	count, err := client.Decr("counter").Int()
	require.NoError(t, err)
	assert.Equal(t, int64(9), count)

	count, err = client.DecrBy("counter", 5).Int()
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

// HGETALL变换：交替的field/value数组投影为map
func TestHGetAllTransform(t *testing.T) {
	client, _ := startPair(t)

	_, err := client.HSet("myhash", "f1", "Hello").Int()
	require.NoError(t, err)
	_, err = client.HSet("myhash", "f2", "World").Int()
	require.NoError(t, err)

	fields, err := client.HGetAll("myhash").Map()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"f1": "Hello", "f2": "World"}, fields)
}

// INFO变换：文本块解析为两级map
func TestInfoTransform(t *testing.T) {
	client, _ := startPair(t)

	sections, err := client.Info().Sections()
	require.NoError(t, err)
	stats, ok := sections["stats"]
	require.True(t, ok, "info should contain a stats section")
	assert.NotEmpty(t, stats["total_connections_received"])

	// map投影同样可用，变换在完成时已经成形
	flat, err := client.Info().Map()
	require.NoError(t, err)
	assert.NotEmpty(t, flat["total_connections_received"])
}

func TestSAddIdempotence(t *testing.T) {
	client, _ := startPair(t)

	count, err := client.SAdd("myset", "x").Int()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = client.SAdd("myset", "x").Int()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	members, err := client.SMembers("myset").Strings()
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, members)
}

func TestDelExists(t *testing.T) {
	client, _ := startPair(t)

	require.NoError(t, client.Set("k", "v").Err())
	count, err := client.Del("k").Int()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = client.Exists("k").Int()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

// 流水线下应答严格按send顺序对位
func TestPipelineOrdering(t *testing.T) {
	client, _ := startPair(t)

	futures := make([]*Future, 64)
	for i := range futures {
		futures[i] = client.Echo(strconv.Itoa(i))
	}
	for i, future := range futures {
		text, err := future.Text()
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(i), text, "reply %d out of order", i)
	}
}

// Start之前发出的命令进入预连接缓冲，连接建立后按序写出
func TestPreConnectBuffering(t *testing.T) {
	server, err := redistest.StartServer()
	require.NoError(t, err)
	t.Cleanup(server.Close)
	client := makeTestClient(t, server)

	// 不调用Start，首个send触发连接
	futures := []*Future{
		client.Set("a", "1"),
		client.Set("b", "2"),
		client.Get("a"),
		client.Get("b"),
	}
	require.NoError(t, futures[0].Err())
	require.NoError(t, futures[1].Err())
	a, err := futures[2].Text()
	require.NoError(t, err)
	b, err := futures[3].Text()
	require.NoError(t, err)
	assert.Equal(t, "1", a)
	assert.Equal(t, "2", b)
}

func TestSubscribePublish(t *testing.T) {
	subscriber, server := startPair(t)
	publisher := makeTestClient(t, server)

	notifications := make(chan Notification, 8)
	subscriber.Bus().Handle("io.vertx.mod-redis.ch", func(n Notification) {
		notifications <- n
	})
	require.NoError(t, subscriber.Subscribe("ch").Err())

	receivers, err := publisher.Publish("ch", "hi").Int()
	require.NoError(t, err)
	assert.Equal(t, int64(1), receivers)

	notification := awaitNotification(t, notifications)
	assert.Equal(t, "ok", notification.Status)
	assert.Equal(t, "ch", notification.Value.Channel)
	assert.Equal(t, "hi", notification.Value.Message)

	// 退订后推送不再到达
	require.NoError(t, subscriber.Unsubscribe("ch").Err())
	receivers, err = publisher.Publish("ch", "again").Int()
	require.NoError(t, err)
	assert.Equal(t, int64(0), receivers)
	select {
	case n := <-notifications:
		t.Fatalf("unexpected notification after unsubscribe: %+v", n)
	case <-time.After(150 * time.Millisecond):
	}
}

// SUBSCRIBE k个channel恰好以k条确认完成
func TestSubscribeMultipleChannels(t *testing.T) {
	subscriber, server := startPair(t)
	publisher := makeTestClient(t, server)

	notifications := make(chan Notification, 8)
	for _, channel := range []string{"c1", "c2", "c3"} {
		subscriber.Bus().Handle("io.vertx.mod-redis."+channel, func(n Notification) {
			notifications <- n
		})
	}
	require.NoError(t, subscriber.Subscribe("c1", "c2", "c3").Err())

	// 订阅依然有效，命令通路也未被确认帧错位
	for _, channel := range []string{"c1", "c2", "c3"} {
		_, err := publisher.Publish(channel, "m-"+channel).Int()
		require.NoError(t, err)
		notification := awaitNotification(t, notifications)
		assert.Equal(t, channel, notification.Value.Channel)
		assert.Equal(t, "m-"+channel, notification.Value.Message)
	}
	pong, err := subscriber.Ping().Text()
	require.NoError(t, err)
	assert.Equal(t, "PONG", pong)
}

func TestPSubscribePublish(t *testing.T) {
	subscriber, server := startPair(t)
	publisher := makeTestClient(t, server)

	notifications := make(chan Notification, 8)
	subscriber.Bus().Handle("io.vertx.mod-redis.news.*", func(n Notification) {
		notifications <- n
	})
	require.NoError(t, subscriber.PSubscribe("news.*").Err())

	_, err := publisher.Publish("news.sports", "goal").Int()
	require.NoError(t, err)

	notification := awaitNotification(t, notifications)
	assert.Equal(t, "ok", notification.Status)
	assert.Equal(t, "news.*", notification.Value.Pattern)
	assert.Equal(t, "news.sports", notification.Value.Channel)
	assert.Equal(t, "goal", notification.Value.Message)

	require.NoError(t, subscriber.PUnsubscribe("news.*").Err())
}

func TestMultiExec(t *testing.T) {
	client, _ := startPair(t)

	require.NoError(t, client.Multi().Err())
	queued, err := client.Set("a", "1").Text()
	require.NoError(t, err)
	assert.Equal(t, "QUEUED", queued)
	queued, err = client.Set("b", "2").Text()
	require.NoError(t, err)
	assert.Equal(t, "QUEUED", queued)

	rep, err := client.Exec().Reply()
	require.NoError(t, err)
	multi, ok := rep.(*Reply.MultiReply)
	require.True(t, ok)
	assert.Equal(t, 2, multi.Len())

	a, err := client.Get("a").Text()
	require.NoError(t, err)
	assert.Equal(t, "1", a)
}

// 事务内单条命令出错不影响其他命令的结果
func TestMultiExecPartialError(t *testing.T) {
	client, _ := startPair(t)

	require.NoError(t, client.Set("notnum", "abc").Err())
	require.NoError(t, client.Multi().Err())
	client.Incr("notnum")
	client.Set("fine", "yes")

	rep, err := client.Exec().Reply()
	require.NoError(t, err)
	multi := rep.(*Reply.MultiReply)
	require.Equal(t, 2, multi.Len())
	_, isErr := multi.Replies[0].(*Reply.ErrReply)
	assert.True(t, isErr, "first queued command should fail")

	fine, err := client.Get("fine").Text()
	require.NoError(t, err)
	assert.Equal(t, "yes", fine)
}

// 服务端错误仅影响发起命令，不污染后续通路
func TestServerErrorIsolated(t *testing.T) {
	client, _ := startPair(t)

	require.NoError(t, client.Set("k", "abc").Err())
	_, err := client.Incr("k").Int()
	var serverErr ServerError
	require.True(t, errors.As(err, &serverErr))

	pong, err := client.Ping().Text()
	require.NoError(t, err)
	assert.Equal(t, "PONG", pong)
}

func TestUsageError(t *testing.T) {
	client, _ := startPair(t)
	assert.True(t, errors.Is(client.Subscribe().Err(), ErrUsage))
	assert.True(t, errors.Is(client.PSubscribe().Err(), ErrUsage))
}

func TestConnectError(t *testing.T) {
	server, err := redistest.StartServer()
	require.NoError(t, err)
	port := server.Port()
	host := server.Host()
	server.Close() // 端口空出，连接将被拒绝

	client, err := MakeClient(&Config{Host: host, Port: port})
	require.NoError(t, err)

	future := client.Get("x")
	assert.True(t, errors.Is(future.Err(), ErrConnect))
	assert.True(t, errors.Is(client.Start().Err(), ErrConnect))
}

// 对端关闭：飞行中的命令得到ErrConnClosed，下一次send惰性重连
func TestPeerCloseAndLazyReconnect(t *testing.T) {
	client, server := startPair(t)

	inflight := client.Send("debug", "sleep", "1")
	time.Sleep(50 * time.Millisecond) // 让命令先写出
	server.CloseConns()

	assert.True(t, errors.Is(inflight.Err(), ErrConnClosed))

	// listener仍在，新的send触发重连
	require.Eventually(t, func() bool {
		pong, err := client.Ping().Text()
		return err == nil && pong == "PONG"
	}, 2*time.Second, 50*time.Millisecond)
}

func TestStopCompletesPending(t *testing.T) {
	client, _ := startPair(t)

	inflight := client.Send("debug", "sleep", "1")
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, client.Stop().Err())
	assert.True(t, errors.Is(inflight.Err(), ErrConnClosed))
}

func TestLatin1RoundTrip(t *testing.T) {
	server, err := redistest.StartServer()
	require.NoError(t, err)
	t.Cleanup(server.Close)
	client, err := MakeClient(&Config{Host: server.Host(), Port: server.Port(), Encoding: "ISO-8859-1"})
	require.NoError(t, err)
	t.Cleanup(func() { client.Stop().Err() })

	require.NoError(t, client.Set("accent", "café").Err())
	value, err := client.Get("accent").Text()
	require.NoError(t, err)
	assert.Equal(t, "café", value)
}
